package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordel/omarchy-fetch-docs/internal/config"
	"github.com/pkordel/omarchy-fetch-docs/internal/crawler"
	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// Batch orchestrates a whole crawl run: output directory setup, page
// discovery, bounded concurrent execution of page pipelines, and
// aggregation of their outcomes.
//
// The run moves through fixed phases in order: reset the output
// directory, fix the page set from the seed page's links, fan out, fan
// in. Each phase completes fully before the next begins. In
// particular no page pipeline writes a file before the directory reset
// has finished, and no page is ever added once fan-out has started.
type Batch struct {
	// seedURL is the index page the crawl starts from.
	seedURL string

	// outputDir is destroyed and recreated at the start of the run.
	outputDir string

	// workers bounds how many page pipelines run concurrently.
	workers int

	// site holds the manual's URL mapping values for discovery.
	site config.Site

	// fetcher performs the discovery fetch; the same fetcher is shared
	// with the page pipelines.
	fetcher *crawler.Fetcher

	// pipeline processes individual pages.
	pipeline *Pipeline

	// logger is used for run-level progress lines.
	logger *slog.Logger

	// mu guards summary mutation from concurrent workers.
	mu sync.Mutex
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets a custom logger for the orchestrator.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// NewBatch creates a Batch from the validated configuration, the shared
// fetcher, and the page pipeline. cfg.Site must be resolved first.
func NewBatch(cfg *config.Config, fetcher *crawler.Fetcher, p *Pipeline, opts ...BatchOption) *Batch {
	b := &Batch{
		seedURL:   cfg.SeedURL,
		outputDir: cfg.OutputDir,
		workers:   cfg.Workers,
		site:      *cfg.Site,
		fetcher:   fetcher,
		pipeline:  p,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run executes the crawl and returns its summary.
//
// Page failures never surface as an error here: every page runs to
// completion and lands in the summary's tallies. Run only returns an
// error when the output directory cannot be prepared or the context is
// cancelled mid-run.
func (b *Batch) Run(ctx context.Context) (*model.Summary, error) {
	start := time.Now()

	// Destructive setup: anything previously in the output directory is
	// gone after this. Must complete before any page work begins.
	if err := b.resetOutputDir(); err != nil {
		return nil, err
	}

	b.logger.Info("discovering documentation pages", "seed", b.seedURL)

	// The page set is the seed plus the links on the seed page, fixed here and
	// never grown during the crawl. A failed discovery fetch degrades
	// to just the seed, which will then fail again in its own pipeline;
	// the run still completes and reports a summary.
	pages := b.discover(ctx)
	b.logger.Info("found pages to download", "count", len(pages))

	summary := &model.Summary{
		SeedURL:   b.seedURL,
		OutputDir: b.outputDir,
		EntryFile: b.site.TOCFilename,
		Pages:     len(pages),
		StartedAt: start,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, pageURL := range pages {
		g.Go(func() error {
			// A cancelled run records the remaining pages as fetch
			// failures rather than dropping them from the summary.
			select {
			case <-gctx.Done():
				b.record(summary, model.Outcome{
					URL:  pageURL,
					Kind: model.OutcomeFetchError,
					Err:  gctx.Err(),
				})
				return nil
			default:
			}

			b.record(summary, b.pipeline.ProcessPage(gctx, pageURL))
			return nil
		})
	}

	// Workers never return errors (outcomes carry the failures), so
	// there is no early cancellation on a failed page.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// record appends an outcome to the summary under the batch lock.
func (b *Batch) record(summary *model.Summary, o model.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	summary.Add(o)
}

// discover fetches the seed page and returns the sorted page set:
// the seed URL plus every internal link found on it.
func (b *Batch) discover(ctx context.Context) []string {
	set := map[string]struct{}{
		b.seedURL: {},
	}

	htmlText, err := b.fetcher.Fetch(ctx, b.seedURL)
	if err != nil {
		b.logger.Error("error downloading page", "url", b.seedURL, "error", err)
		return []string{b.seedURL}
	}

	mapper := crawler.NewMapper(b.site.RootPath, b.site.TOCFilename, b.site.Extension)
	proc, err := crawler.NewProcessor(b.seedURL, b.site.RootPath, b.site.PathSegment, mapper)
	if err == nil {
		var data *model.PageData
		if data, err = proc.Process(htmlText); err == nil {
			for link := range data.InternalLinks {
				set[link] = struct{}{}
			}
		}
	}
	if err != nil {
		b.logger.Error("error processing page", "url", b.seedURL, "error", err)
	}

	pages := make([]string, 0, len(set))
	for page := range set {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// resetOutputDir destroys the output directory and recreates it empty.
func (b *Batch) resetOutputDir() error {
	if err := os.RemoveAll(b.outputDir); err != nil {
		return fmt.Errorf("failed to clear output directory %s: %w", b.outputDir, err)
	}
	if err := os.MkdirAll(b.outputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.outputDir, err)
	}
	return nil
}
