package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/pkordel/omarchy-fetch-docs/internal/config"
	"github.com/pkordel/omarchy-fetch-docs/internal/crawler"
	"github.com/pkordel/omarchy-fetch-docs/internal/extract"
	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// Pipeline processes one page end to end: fetch, process, extract,
// convert, persist. A single Pipeline is shared by all workers; it
// holds no per-page state (each page gets its own Processor), so
// ProcessPage is safe to call concurrently.
type Pipeline struct {
	// fetcher downloads raw HTML over the shared connection pool.
	fetcher *crawler.Fetcher

	// mapper derives local filenames.
	mapper *crawler.Mapper

	// extractor pulls readable content from the rewritten HTML.
	extractor extract.Extractor

	// converter renders content HTML as markdown.
	converter extract.Converter

	// site holds the manual's URL mapping values.
	site config.Site

	// outputDir is where converted pages are written.
	outputDir string

	// logger is used for per-page progress and error lines.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithExtractor replaces the default readability extractor.
func WithExtractor(e extract.Extractor) Option {
	return func(p *Pipeline) {
		p.extractor = e
	}
}

// WithConverter replaces the default markdown converter.
func WithConverter(c extract.Converter) Option {
	return func(p *Pipeline) {
		p.converter = c
	}
}

// New creates a Pipeline from the validated configuration and the
// shared fetcher. cfg.Site must be resolved before calling New.
func New(cfg *config.Config, fetcher *crawler.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		mapper:    crawler.NewMapper(cfg.Site.RootPath, cfg.Site.TOCFilename, cfg.Site.Extension),
		extractor: extract.NewReadabilityExtractor(),
		converter: extract.NewMarkdownConverter(),
		site:      *cfg.Site,
		outputDir: cfg.OutputDir,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// ProcessPage runs the full pipeline for one page and returns its
// outcome. Every failure is contained here: it is logged with the
// offending URL and becomes this page's outcome, never an error that
// could abort sibling pipelines.
func (p *Pipeline) ProcessPage(ctx context.Context, pageURL string) model.Outcome {
	start := time.Now()
	outcome := model.Outcome{URL: pageURL}

	finish := func(o model.Outcome) model.Outcome {
		o.Duration = time.Since(start)
		return o
	}

	// Step 1: fetch. Absence of content ends this page's pipeline.
	htmlText, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.logger.Error("error downloading page", "url", pageURL, "error", err)
		outcome.Kind = model.OutcomeFetchError
		outcome.Err = err
		return finish(outcome)
	}

	// Step 2: one-pass link discovery and rewrite, with the page's own
	// URL as base. The discovered links are unused beyond the seed page
	// (the page set was fixed before fan-out); the rewritten HTML is
	// what flows into extraction.
	proc, err := crawler.NewProcessor(pageURL, p.site.RootPath, p.site.PathSegment, p.mapper)
	if err == nil {
		var data *model.PageData
		if data, err = proc.Process(htmlText); err == nil {
			outcome.Title = data.Title
			htmlText = data.UpdatedHTML
		}
	}
	if err != nil {
		p.logger.Error("error processing page", "url", pageURL, "error", err)
		outcome.Kind = model.OutcomeProcessError
		outcome.Err = err
		return finish(outcome)
	}

	// Step 3: filename. Underivable means skip, nothing written.
	filename, ok := p.mapper.Filename(pageURL)
	if !ok {
		p.logger.Warn("could not determine filename for URL", "url", pageURL)
		outcome.Kind = model.OutcomeNoFilename
		return finish(outcome)
	}
	outcome.Filename = filename

	// Step 4: readable-content extraction on the rewritten HTML.
	content, err := p.extractor.Extract(htmlText, pageURL)
	if err != nil {
		p.logger.Error("error processing page", "url", pageURL, "error", err)
		outcome.Kind = model.OutcomeProcessError
		outcome.Err = err
		return finish(outcome)
	}
	if content == "" {
		p.logger.Warn("page could not be simplified", "url", pageURL)
		outcome.Kind = model.OutcomeExtractionEmpty
		outcome.Content = model.ExtractionErrorMarker
		return finish(outcome)
	}

	// Step 5: markdown conversion (ATX headings).
	markdown, err := p.converter.Convert(content)
	if err != nil {
		p.logger.Error("error processing page", "url", pageURL, "error", err)
		outcome.Kind = model.OutcomeProcessError
		outcome.Err = err
		return finish(outcome)
	}

	// Step 6: persist. NFC normalization keeps combining characters
	// from the source HTML in a canonical form; the file is UTF-8 and
	// overwrites any previous content.
	markdown = norm.NFC.String(markdown)
	path := filepath.Join(p.outputDir, filename)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		p.logger.Error("error writing page", "url", pageURL, "path", path, "error", err)
		outcome.Kind = model.OutcomeWriteError
		outcome.Err = err
		return finish(outcome)
	}

	p.logger.Info("downloaded", "url", pageURL, "file", filename)
	outcome.Kind = model.OutcomeSuccess
	outcome.Content = markdown
	return finish(outcome)
}
