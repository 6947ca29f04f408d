package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// MarkdownWriter outputs the crawl summary as a markdown document with
// a run-information table and a per-page outcome table. The file is
// suitable for committing next to the downloaded docs or pasting into
// an issue.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full crawl report in markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Documentation Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + summary.SeedURL + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration.Round(time.Millisecond).String()},
			{"Pages", strconv.Itoa(summary.Pages)},
			{"Succeeded", strconv.Itoa(summary.Succeeded)},
			{"Failed", strconv.Itoa(summary.Failed)},
			{"Output directory", "`" + summary.OutputDir + "`"},
			{"Entry file", "`" + summary.EntryFile + "`"},
		},
	})
	md.PlainText("")

	w.writePages(md, summary)

	return len(md.String()), md.Build()
}

// writePages writes the per-page outcome table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, summary *model.Summary) {
	if len(summary.Outcomes) == 0 {
		return
	}

	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Outcomes))
	for _, o := range summary.Outcomes {
		file := o.Filename
		if file == "" {
			file = "—"
		}
		detail := ""
		if o.Err != nil {
			detail = o.Err.Error()
		}
		rows = append(rows, []string{
			"`" + o.URL + "`",
			file,
			o.Kind.String(),
			detail,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "File", "Outcome", "Detail"},
		Rows:   rows,
	})
}
