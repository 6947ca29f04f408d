package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordel/omarchy-fetch-docs/internal/config"
	"github.com/pkordel/omarchy-fetch-docs/internal/database"
)

// NewRunsCmd creates the runs command.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived crawl runs",
		Long: `Runs lists recent crawl runs recorded in the crawl archive.

Runs are recorded when fetch is invoked with --archive. The archive
lives in the XDG data directory unless --archive-dir points elsewhere.

Examples:
  # List the last 10 archived runs
  fetchdocs runs

  # List more runs from a custom archive location
  fetchdocs runs -n 50 --archive-dir /var/lib/fetchdocs`,
		RunE: runRunsCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of runs to list")
	cmd.Flags().String("archive-dir", "",
		"Directory of the crawl archive database (default: XDG data directory)")

	return cmd
}

// runRunsCmd executes the runs command.
func runRunsCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return err
	}
	if archiveDir == "" {
		archiveDir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(archiveDir, opts)
	if err != nil {
		return fmt.Errorf("no crawl archive found (run fetch --archive first): %w", err)
	}
	defer func() { _ = db.Close() }()

	records, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tPAGES\tOK\tFAILED\tSEED")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Duration.Round(10*time.Millisecond).String(),
			r.Pages,
			r.Succeeded,
			r.Failed,
			r.SeedURL,
		)
	}
	return w.Flush()
}
