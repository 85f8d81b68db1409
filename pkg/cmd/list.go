package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smy-101/gmarket/internal/catalog"
	"github.com/smy-101/gmarket/internal/types"
)

const (
	dateFormat     = "2006-01-02 15:04"
	colName        = "Name"
	colVersion     = "Version"
	colAuthor      = "Author"
	colLastUpdated = "Last Updated"
	colStatus      = "Status"
	emptyMsg       = "No catalog collected yet."
	usageHint      = "Run 'gmarket' to collect the marketplace catalog."
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the packages in the collected catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeList()
	},
}

// executeList loads the collected catalog and displays a table of all packages.
func executeList() error {
	records, err := catalog.Load(filepath.Join(outputDir(), catalog.FileName))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if len(records) == 0 {
		fmt.Println(emptyMsg)
		fmt.Println(usageHint)
		return nil
	}

	cnf := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(cnf))
	table.Header(colName, colVersion, colAuthor, colLastUpdated, colStatus)

	for _, record := range records {
		table.Append(record.Name, record.Version, record.Author, formatDate(record.LastUpdated), recordStatus(record))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d packages\n", len(records))

	return nil
}

// formatDate renders an ISO 8601 commit date for display. Unparseable or
// absent dates come back as a dash.
func formatDate(value string) string {
	if value == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(dateFormat)
}

func recordStatus(record types.PackageRecord) string {
	if record.Error != "" {
		return record.Error
	}
	return "ok"
}
