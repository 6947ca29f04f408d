package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkordel/omarchy-fetch-docs/internal/crawler"
)

const seedPage = `<html><head><title>The Omarchy Manual</title></head><body>
	<a href="/2/the-omarchy-manual/install">Getting Started</a>
	<a href="https://other.test/external">External</a>
</body></html>`

const installPage = `<html><head><title>Getting Started</title></head><body>
	<a href="/2/the-omarchy-manual">Back</a>
	<p>Install instructions.</p>
</body></html>`

// newManualServer serves a tiny two-page manual.
func newManualServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/2/the-omarchy-manual", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(seedPage))
	})
	mux.HandleFunc("/2/the-omarchy-manual/install", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(installPage))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestBatch wires a batch against the given server with passthrough
// extraction so the written files carry the rewritten HTML.
func newTestBatch(t *testing.T, server *httptest.Server) (*Batch, string) {
	t.Helper()

	cfg := newTestConfig(t, server.URL+"/2/the-omarchy-manual")
	fetcher := crawler.NewFetcher(server.Client())
	p := New(cfg, fetcher,
		WithExtractor(passthroughExtractor{}),
		WithConverter(passthroughConverter{}),
	)
	return NewBatch(cfg, fetcher, p), cfg.OutputDir
}

// TestBatchRun tests a full crawl against a local manual.
func TestBatchRun(t *testing.T) {
	t.Parallel()

	t.Run("seed and linked pages land as markdown files", func(t *testing.T) {
		t.Parallel()

		server := newManualServer(t)
		batch, outputDir := newTestBatch(t, server)

		summary, err := batch.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if summary.Pages != 2 {
			t.Errorf("expected 2 pages (seed + install), got %d", summary.Pages)
		}
		if summary.Succeeded != 2 {
			t.Errorf("expected 2 successes, got %d", summary.Succeeded)
		}
		if summary.Failed != 0 {
			t.Errorf("expected no failures, got %d", summary.Failed)
		}
		if summary.EntryFile != "toc.md" {
			t.Errorf("expected toc.md entry file, got %q", summary.EntryFile)
		}

		for _, name := range []string{"toc.md", "install.md"} {
			if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
				t.Errorf("expected %s in output directory: %v", name, err)
			}
		}

		// The seed's install link points at the local file, the external
		// link is untouched.
		toc, err := os.ReadFile(filepath.Join(outputDir, "toc.md"))
		if err != nil {
			t.Fatalf("failed to read toc: %v", err)
		}
		if !containsHref(string(toc), "install.md") {
			t.Errorf("expected toc to link install.md, got:\n%s", toc)
		}
		if !containsHref(string(toc), "https://other.test/external") {
			t.Errorf("expected external link preserved in toc, got:\n%s", toc)
		}
	})

	t.Run("stale files are gone after the run", func(t *testing.T) {
		t.Parallel()

		server := newManualServer(t)
		batch, outputDir := newTestBatch(t, server)

		stale := filepath.Join(outputDir, "leftover.md")
		if err := os.WriteFile(stale, []byte("from an earlier run"), 0o644); err != nil {
			t.Fatalf("failed to seed stale file: %v", err)
		}

		if _, err := batch.Run(context.Background()); err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if _, err := os.Stat(stale); !os.IsNotExist(err) {
			t.Errorf("expected stale file removed, stat err = %v", err)
		}
	})

	t.Run("unreachable seed degrades to a single failed page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down for maintenance", http.StatusInternalServerError)
		}))
		defer server.Close()

		batch, outputDir := newTestBatch(t, server)

		summary, err := batch.Run(context.Background())
		if err != nil {
			t.Fatalf("run must not fail on a page error: %v", err)
		}

		if summary.Pages != 1 {
			t.Errorf("expected page set to degrade to the seed, got %d pages", summary.Pages)
		}
		if summary.Failed != 1 || summary.Succeeded != 0 {
			t.Errorf("expected 1 failure and 0 successes, got %d/%d", summary.Failed, summary.Succeeded)
		}
		assertDirEmpty(t, outputDir)
	})

	t.Run("a failing page is tallied without stopping the others", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/2/the-omarchy-manual", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(seedPage))
		})
		// No install handler: that page 404s.
		server := httptest.NewServer(mux)
		defer server.Close()

		batch, outputDir := newTestBatch(t, server)

		summary, err := batch.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if summary.Pages != 2 || summary.Succeeded != 1 || summary.Failed != 1 {
			t.Errorf("expected 2 pages with 1 success and 1 failure, got %d/%d/%d",
				summary.Pages, summary.Succeeded, summary.Failed)
		}
		if _, err := os.Stat(filepath.Join(outputDir, "toc.md")); err != nil {
			t.Errorf("expected seed still written: %v", err)
		}
		if _, err := os.Stat(filepath.Join(outputDir, "install.md")); !os.IsNotExist(err) {
			t.Errorf("expected no file for the failed page, stat err = %v", err)
		}
	})

	t.Run("every outcome is recorded exactly once", func(t *testing.T) {
		t.Parallel()

		server := newManualServer(t)
		batch, _ := newTestBatch(t, server)

		summary, err := batch.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if len(summary.Outcomes) != summary.Pages {
			t.Errorf("expected %d outcomes, got %d", summary.Pages, len(summary.Outcomes))
		}
		if summary.Succeeded+summary.Failed != summary.Pages {
			t.Errorf("tallies do not add up: %d + %d != %d",
				summary.Succeeded, summary.Failed, summary.Pages)
		}
	})
}

// TestBatchConcurrencyLimit verifies no more page fetches run at once
// than the configured worker count allows.
func TestBatchConcurrencyLimit(t *testing.T) {
	t.Parallel()

	const (
		pageCount = 50
		workers   = 4
	)

	var inFlight, maxInFlight atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/2/the-omarchy-manual", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(manyLinksPage(pageCount)))
	})
	mux.HandleFunc("/2/the-omarchy-manual/", func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><p>page</p></body></html>`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := newTestConfig(t, server.URL+"/2/the-omarchy-manual")
	cfg.Workers = workers
	fetcher := crawler.NewFetcher(server.Client())
	p := New(cfg, fetcher,
		WithExtractor(passthroughExtractor{}),
		WithConverter(passthroughConverter{}),
	)

	summary, err := NewBatch(cfg, fetcher, p).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if summary.Pages != pageCount+1 {
		t.Errorf("expected %d pages, got %d", pageCount+1, summary.Pages)
	}
	if got := maxInFlight.Load(); got > workers {
		t.Errorf("observed %d concurrent page fetches, limit is %d", got, workers)
	}
}

// manyLinksPage builds a seed page with n distinct internal links.
func manyLinksPage(n int) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `<a href="/2/the-omarchy-manual/page-%d">p</a>`, i)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

// containsHref reports whether the HTML contains an anchor with the
// exact href value.
func containsHref(html, href string) bool {
	return strings.Contains(html, `href="`+href+`"`)
}
