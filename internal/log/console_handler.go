package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level glyphs and colors for console output. One glyph per line keeps
// the progress stream scannable when dozens of pages download at once.
var (
	glyphDebug = color.New(color.Faint).Sprint("→")
	glyphInfo  = color.New(color.FgCyan).Sprint("ℹ")
	glyphWarn  = color.New(color.FgYellow).Sprint("⚠")
	glyphError = color.New(color.FgRed).Sprint("✗")

	dim = color.New(color.Faint).SprintFunc()
)

// ConsoleHandler is a slog.Handler that renders records as
// glyph-prefixed, colorized lines for humans rather than as
// machine-parseable output. Attributes follow the message as dimmed
// key=value pairs.
type ConsoleHandler struct {
	// out receives the rendered lines.
	out io.Writer

	// level is the minimum level this handler emits.
	level slog.Leveler

	// attrs are attributes accumulated via WithAttrs.
	attrs []slog.Attr

	// groups are group names accumulated via WithGroup, joined into
	// attribute key prefixes.
	groups []string

	// mu serializes writes; handlers are used from concurrent workers.
	mu *sync.Mutex
}

// NewConsoleHandler creates a ConsoleHandler writing to out.
// A nil opts uses slog.LevelInfo as the minimum level.
func NewConsoleHandler(out io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &ConsoleHandler{
		out:   out,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders the record as one line: glyph, message, then dimmed
// key=value attributes.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(glyphFor(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&sb, prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// WithAttrs returns a handler that includes the given attributes on
// every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys
// with the group name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// glyphFor picks the level's glyph.
func glyphFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return glyphError
	case level >= slog.LevelWarn:
		return glyphWarn
	case level >= slog.LevelInfo:
		return glyphInfo
	default:
		return glyphDebug
	}
}

// writeAttr appends one dimmed key=value pair.
func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	sb.WriteByte(' ')
	sb.WriteString(dim(fmt.Sprintf("%s=%v", key, a.Value)))
}
