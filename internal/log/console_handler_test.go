package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// TestConsoleHandler tests the human-oriented log rendering.
func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	t.Run("one line per record with message and attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewConsoleHandler(&buf, nil))

		logger.Info("downloaded", "url", "https://example.test/install", "file", "install.md")

		out := buf.String()
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected exactly one line, got %q", out)
		}
		if !strings.Contains(out, "downloaded") {
			t.Errorf("expected message in output, got %q", out)
		}
		if !strings.Contains(out, "url=https://example.test/install") {
			t.Errorf("expected url attr in output, got %q", out)
		}
		if !strings.Contains(out, "file=install.md") {
			t.Errorf("expected file attr in output, got %q", out)
		}
	})

	t.Run("debug is suppressed at the default level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewConsoleHandler(&buf, nil))

		logger.Debug("resolving url")
		if buf.Len() != 0 {
			t.Errorf("expected no output for debug at info level, got %q", buf.String())
		}
	})

	t.Run("debug is emitted when the level allows it", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		logger.Debug("resolving url")
		if !strings.Contains(buf.String(), "resolving url") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})

	t.Run("with-attrs apply to every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewConsoleHandler(&buf, nil)).With("run", "42")

		logger.Info("first")
		logger.Info("second")

		if strings.Count(buf.String(), "run=42") != 2 {
			t.Errorf("expected run attr on both records, got %q", buf.String())
		}
	})

	t.Run("groups prefix attribute keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewConsoleHandler(&buf, nil)).WithGroup("page")

		logger.Info("downloaded", "file", "toc.md")
		if !strings.Contains(buf.String(), "page.file=toc.md") {
			t.Errorf("expected grouped attr key, got %q", buf.String())
		}
	})

	t.Run("with-attrs does not mutate the parent handler", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		handler := NewConsoleHandler(&buf, nil)
		_ = handler.WithAttrs([]slog.Attr{slog.String("run", "42")})

		if err := handler.Handle(context.Background(), newRecord("plain")); err != nil {
			t.Fatalf("handle failed: %v", err)
		}
		if strings.Contains(buf.String(), "run=42") {
			t.Errorf("expected parent handler unchanged, got %q", buf.String())
		}
	})
}

// newRecord builds a minimal info-level record.
func newRecord(msg string) slog.Record {
	var r slog.Record
	r.Level = slog.LevelInfo
	r.Message = msg
	return r
}
