package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// Console output helpers.
var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

// ConsoleWriter renders the end-of-run summary for the terminal:
// elapsed time, success and failure tallies, the output directory, and
// the file to open first.
type ConsoleWriter struct {
	baseWriter
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary.
func (w *ConsoleWriter) Write(summary *model.Summary) (int, error) {
	var total int

	n, err := fmt.Fprintf(w.output, "\n%s\n",
		colorBold(fmt.Sprintf("Documentation download completed in %.2f seconds!", summary.Duration.Seconds())))
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w.output, "%s Successfully downloaded: %d pages\n",
		colorSuccess("✓"), summary.Succeeded)
	total += n
	if err != nil {
		return total, err
	}

	if summary.Failed > 0 {
		n, err = fmt.Fprintf(w.output, "%s Failed downloads: %d pages\n",
			colorError("✗"), summary.Failed)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w.output, "Files saved to: %s%c\n", summary.OutputDir, filepath.Separator)
	total += n
	if err != nil {
		return total, err
	}

	n, err = fmt.Fprintf(w.output, "Open %s to view offline.\n",
		filepath.Join(summary.OutputDir, summary.EntryFile))
	total += n
	return total, err
}
