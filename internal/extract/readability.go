package extract

import (
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityExtractor extracts main content using the go-shiori port
// of Mozilla's Readability algorithm. The algorithm itself is a black
// box here: full HTML in, article HTML out.
type ReadabilityExtractor struct{}

// NewReadabilityExtractor returns a ReadabilityExtractor.
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

// Extract runs readability over the page HTML and returns the article
// content as HTML. A page the algorithm cannot simplify comes back as
// an empty string with a nil error; real parse failures return an error.
func (e *ReadabilityExtractor) Extract(htmlText, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page URL: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(htmlText), u)
	if err != nil {
		// Readability reports "no content" as an error; the pipeline
		// treats that as the empty-extraction case, not a crash.
		return "", nil
	}

	return strings.TrimSpace(article.Content), nil
}
