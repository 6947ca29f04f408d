package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkordel/omarchy-fetch-docs/internal/config"
	"github.com/pkordel/omarchy-fetch-docs/internal/crawler"
	"github.com/pkordel/omarchy-fetch-docs/internal/database"
	intlog "github.com/pkordel/omarchy-fetch-docs/internal/log"
	"github.com/pkordel/omarchy-fetch-docs/internal/model"
	"github.com/pkordel/omarchy-fetch-docs/internal/pipeline"
	"github.com/pkordel/omarchy-fetch-docs/internal/report"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [seed-url]",
		Short: "Download the manual to a local directory",
		Long: `Fetch downloads a documentation manual and converts it to markdown.

The crawl is two levels deep: the seed page plus the pages it links to.
Links are not followed transitively. The output directory is destroyed
and recreated, so do not point it at a directory with unrelated content.

Examples:
  # Download the Omarchy manual with defaults
  fetchdocs fetch

  # Download a different manual to a specific directory
  fetchdocs fetch https://learn.omacom.io/2/the-omarchy-manual -o manual

  # Write a markdown crawl report next to the docs
  fetchdocs fetch --report crawl-report.md

  # Record the run in the crawl archive
  fetchdocs fetch --archive

Configuration file (.fetchdocs) example:
  seed: https://learn.omacom.io/2/the-omarchy-manual
  outputDir: docs
  workers: 4
  site:
    tocFilename: toc.md
    extension: .md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory (destroyed and recreated)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent page downloads")
	cmd.Flags().Int("max-conns", config.DefaultMaxConnections,
		"Global cap on simultaneous open connections")
	cmd.Flags().Int("max-conns-per-host", config.DefaultMaxConnectionsPerHost,
		"Per-host cap on simultaneous connections")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .fetchdocs in current or home directory)")
	cmd.Flags().String("report", "",
		"Write a markdown crawl report to the given file")
	cmd.Flags().Bool("archive", false,
		"Record the run in the SQLite crawl archive")
	cmd.Flags().String("archive-dir", "",
		"Directory for the crawl archive database (default: XDG data directory)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if err := cfg.ResolveSite(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Interrupts cancel in-flight requests; pages not yet processed are
	// recorded as failures and the summary still prints.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("received shutdown signal, cancelling...")
		cancel()
	}()

	return runFetch(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// optional configuration file. Flag values override file values.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// The config file applies first so explicit flags win.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if len(args) > 0 {
		cfg.SeedURL = args[0]
	}

	if cmd.Flags().Changed("output") {
		if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}

	cfg.MaxConnections, err = cmd.Flags().GetInt("max-conns")
	if err != nil {
		return nil, err
	}

	cfg.MaxConnectionsPerHost, err = cmd.Flags().GetInt("max-conns-per-host")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	cfg.Archive, err = cmd.Flags().GetBool("archive")
	if err != nil {
		return nil, err
	}

	cfg.ArchiveDir, err = cmd.Flags().GetString("archive-dir")
	if err != nil {
		return nil, err
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = config.XDGDataDir()
	} else {
		// An explicit archive directory implies archiving.
		cfg.Archive = true
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the console logger based on verbosity.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := intlog.NewConsoleHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// runFetch executes the crawl.
func runFetch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Downloading documentation to %s%c\n", cfg.OutputDir, filepath.Separator)
	fmt.Println("This will include markdown pages for offline viewing.")

	client := crawler.NewHTTPClient(cfg.Timeout, cfg.MaxConnections, cfg.MaxConnectionsPerHost)
	fetcher := crawler.NewFetcher(client,
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)

	p := pipeline.New(cfg, fetcher, pipeline.WithLogger(logger))
	batch := pipeline.NewBatch(cfg, fetcher, p, pipeline.WithBatchLogger(logger))

	summary, err := batch.Run(ctx)
	if err != nil {
		return err
	}

	// Partial failures are reported in the summary, not via the exit
	// status: the run always completes and always prints its tallies.
	if _, err := report.NewConsoleWriter(os.Stdout).Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if cfg.ReportFile != "" {
		if err := writeReportFile(cfg.ReportFile, summary); err != nil {
			return err
		}
		logger.Info("crawl report written", "file", cfg.ReportFile)
	}

	if cfg.Archive {
		db, err := database.Open(cfg.ArchiveDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open crawl archive: %w", err)
		}
		defer func() { _ = db.Close() }()

		runID, err := db.SaveRun(ctx, summary)
		if err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		logger.Info("run archived", "id", runID, "db", db.Path())
	}

	return nil
}

// writeReportFile renders the markdown crawl report to path.
func writeReportFile(path string, summary *model.Summary) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if _, err := report.NewMarkdownWriter(f).Write(summary); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
