package report

import (
	"io"

	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// Writer outputs a crawl summary.
// Implementations render the same summary for different audiences: the
// console writer for the terminal at the end of a run, the markdown
// writer for a file that can be committed or shared.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)
}

// baseWriter provides the common output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
