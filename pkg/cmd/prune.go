package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smy-101/gmarket/internal/prune"
)

func init() {
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove icon files no catalog record references",
	Long: `Remove stored icon files that no record of the collected catalog
references.

Collection runs overwrite packages.json but leave the icons of delisted
packages behind in the icons directory. Prune deletes those leftovers.
It requires a collected catalog and only ever touches files inside the
icons directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executePrune(cmd)
	},
}

func executePrune(cmd *cobra.Command) error {
	pruner := prune.NewPrunerWithLogger(outputDir(), pruneLogger{})

	report, err := pruner.Prune(cmd.Context())
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	if report.OrphansRemoved > 0 {
		color.Green("Removed %d orphaned icons (%d checked)", report.OrphansRemoved, report.IconsChecked)
	} else {
		fmt.Printf("Nothing to prune, %d icons checked\n", report.IconsChecked)
	}

	return nil
}

// pruneLogger forwards prune logs to the global logger.
type pruneLogger struct{}

func (pruneLogger) Debug(msg string, fields ...prune.Field) {
	logFields(log.Debug(), fields).Msg(msg)
}

func (pruneLogger) Info(msg string, fields ...prune.Field) {
	logFields(log.Info(), fields).Msg(msg)
}

func (pruneLogger) Warn(msg string, fields ...prune.Field) {
	logFields(log.Warn(), fields).Msg(msg)
}

func (pruneLogger) Error(msg string, err error, fields ...prune.Field) {
	logFields(log.Error().Err(err), fields).Msg(msg)
}

func logFields(event *zerolog.Event, fields []prune.Field) *zerolog.Event {
	for _, field := range fields {
		event = event.Interface(field.Key, field.Value)
	}
	return event
}
