package extract

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownConverter converts content HTML to markdown.
type MarkdownConverter struct{}

// NewMarkdownConverter returns a MarkdownConverter.
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{}
}

// Convert renders contentHTML as markdown. The converter emits ATX
// headings ("# Title"), so the output files read naturally in any
// markdown viewer.
func (c *MarkdownConverter) Convert(contentHTML string) (string, error) {
	return htmltomarkdown.ConvertString(contentHTML)
}
