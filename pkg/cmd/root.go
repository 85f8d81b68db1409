package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smy-101/gmarket/internal/catalog"
	"github.com/smy-101/gmarket/internal/collect"
)

var (
	limitFlag   int
	verboseFlag bool
	outputFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "gmarket",
	Short: "Build the catalog of a plugin marketplace repository",
	Long: `gmarket builds the published catalog of a plugin marketplace hosted as a
GitHub repository with one directory per package under packages/.

It lists the package directories, fetches each package's manifest.json and
commit history, materializes declared icons as 32x32 local files, and
writes the aggregated packages.json into the output directory.

Run it without arguments to collect the whole catalog.`,

	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

	SilenceUsage:  true,
	SilenceErrors: true, //prevent duplicate printing of errors

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verboseFlag)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCollect(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output directory (overrides config)")
	rootCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "stop after collecting this many packages (0 = no cap)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// outputDir resolves the output directory from the --output flag, falling
// back to the configured value.
func outputDir() string {
	if outputFlag != "" {
		return outputFlag
	}
	return viper.GetString("output_dir")
}

func executeCollect(cmd *cobra.Command) error {
	opts := collect.Options{
		Token:     viper.GetString("github_token"),
		Proxy:     viper.GetString("proxy"),
		Owner:     viper.GetString("market_owner"),
		Repo:      viper.GetString("market_repo"),
		Branch:    viper.GetString("market_branch"),
		OutputDir: outputDir(),
		Limit:     limitFlag,
	}

	collector := collect.New(opts)
	report, err := collector.Run(cmd.Context())
	if err != nil {
		return err
	}

	color.Green("Collected %d packages into %s (%s)",
		report.Collected,
		filepath.Join(opts.OutputDir, catalog.FileName),
		report.Duration.Round(time.Millisecond))

	if report.Errored > 0 {
		color.Yellow("%d packages without manifest.json", report.Errored)
	}
	if report.Skipped > 0 {
		color.Yellow("%d packages skipped by unexpected failures", report.Skipped)
	}

	return nil
}
