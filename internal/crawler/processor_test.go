package crawler

import (
	"strings"
	"testing"
)

const (
	testRootPath = "/2/the-omarchy-manual"
	testSegment  = "the-omarchy-manual"
)

func newTestProcessor(t *testing.T, baseURL string) *Processor {
	t.Helper()

	mapper := NewMapper(testRootPath, "toc.md", ".md")
	proc, err := NewProcessor(baseURL, testRootPath, testSegment, mapper)
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}
	return proc
}

// TestProcessorProcess tests the single-pass collect-and-rewrite.
func TestProcessorProcess(t *testing.T) {
	t.Parallel()

	t.Run("collects internal links as absolute URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/2/the-omarchy-manual/install">Install</a>
			<a href="/2/the-omarchy-manual/hotkeys">Hotkeys</a>
		</body></html>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		want := []string{
			"https://example.test/2/the-omarchy-manual/install",
			"https://example.test/2/the-omarchy-manual/hotkeys",
		}
		if len(data.InternalLinks) != len(want) {
			t.Fatalf("expected %d links, got %d", len(want), len(data.InternalLinks))
		}
		for _, w := range want {
			if _, ok := data.InternalLinks[w]; !ok {
				t.Errorf("expected link %q in discovered set", w)
			}
		}
	})

	t.Run("rewrites internal anchors to local filenames", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/2/the-omarchy-manual">Manual</a>
			<a href="/2/the-omarchy-manual/install">Install</a>
		</body></html>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		if !strings.Contains(data.UpdatedHTML, `href="toc.md"`) {
			t.Errorf("expected manual root rewritten to toc.md, got:\n%s", data.UpdatedHTML)
		}
		if !strings.Contains(data.UpdatedHTML, `href="install.md"`) {
			t.Errorf("expected install page rewritten to install.md, got:\n%s", data.UpdatedHTML)
		}
	})

	t.Run("leaves external anchors untouched and uncollected", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="https://other.test/x">X</a>
			<a href="/unrelated/page">Unrelated</a>
			<a href="relative/link">Relative</a>
		</body></html>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		if len(data.InternalLinks) != 0 {
			t.Errorf("expected no discovered links, got %v", data.InternalLinks)
		}
		for _, href := range []string{`href="https://other.test/x"`, `href="/unrelated/page"`, `href="relative/link"`} {
			if !strings.Contains(data.UpdatedHTML, href) {
				t.Errorf("expected %s preserved, got:\n%s", href, data.UpdatedHTML)
			}
		}
	})

	t.Run("matches the identifying segment case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/2/The-Omarchy-Manual/install">Install</a>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		if len(data.InternalLinks) != 1 {
			t.Errorf("expected 1 link from mixed-case href, got %d", len(data.InternalLinks))
		}
	})

	t.Run("duplicate hrefs collapse to one link", func(t *testing.T) {
		t.Parallel()

		html := `<body>
			<a href="/2/the-omarchy-manual/install">Install</a>
			<a href="/2/the-omarchy-manual/install">Install again</a>
			<a href="/2/the-omarchy-manual/install">And again</a>
		</body>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		if len(data.InternalLinks) != 1 {
			t.Errorf("expected duplicates to collapse, got %d links", len(data.InternalLinks))
		}
	})

	t.Run("extracts the page title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Omarchy Manual</title></head><body></body></html>`

		proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")
		data, err := proc.Process(html)
		if err != nil {
			t.Fatalf("failed to process: %v", err)
		}

		if data.Title != "Omarchy Manual" {
			t.Errorf("expected title 'Omarchy Manual', got %q", data.Title)
		}
	})
}

// TestProcessorIdempotence verifies that processing already-rewritten
// HTML changes nothing: local hrefs no longer match the root-relative
// predicate.
func TestProcessorIdempotence(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/2/the-omarchy-manual">Manual</a>
		<a href="/2/the-omarchy-manual/install">Install</a>
		<a href="https://other.test/x">X</a>
	</body></html>`

	base := "https://example.test/2/the-omarchy-manual"

	first, err := newTestProcessor(t, base).Process(html)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	second, err := newTestProcessor(t, base).Process(first.UpdatedHTML)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	if second.UpdatedHTML != first.UpdatedHTML {
		t.Errorf("second pass changed the HTML:\nfirst:  %s\nsecond: %s", first.UpdatedHTML, second.UpdatedHTML)
	}
	if len(second.InternalLinks) != 0 {
		t.Errorf("second pass discovered links in rewritten HTML: %v", second.InternalLinks)
	}
}

// TestProcessorMemo verifies URL resolution is memoized per instance.
func TestProcessorMemo(t *testing.T) {
	t.Parallel()

	proc := newTestProcessor(t, "https://example.test/2/the-omarchy-manual")

	html := strings.Repeat(`<a href="/2/the-omarchy-manual/install">Install</a>`, 20)
	if _, err := proc.Process(html); err != nil {
		t.Fatalf("failed to process: %v", err)
	}

	if len(proc.resolved) != 1 {
		t.Errorf("expected 1 memoized resolution, got %d", len(proc.resolved))
	}
	if got := proc.resolved["/2/the-omarchy-manual/install"]; got != "https://example.test/2/the-omarchy-manual/install" {
		t.Errorf("unexpected memoized value %q", got)
	}
}
