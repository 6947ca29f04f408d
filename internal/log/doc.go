// Package log provides a slog.Handler that renders records as
// colorized, glyph-prefixed console lines. The crawl's progress output
// is meant for humans watching a terminal, not for log aggregation, so
// the handler favors readability over structure.
package log
