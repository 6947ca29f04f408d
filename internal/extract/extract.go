package extract

// Extractor pulls the main readable content out of a full HTML page,
// dropping boilerplate such as navigation, sidebars, and footers.
type Extractor interface {
	// Extract processes the page's HTML and returns the main content as
	// clean HTML. pageURL is the URL of the page, used to resolve
	// references inside the content. An empty result with a nil error
	// means the page had no extractable content.
	Extract(htmlText, pageURL string) (string, error)
}

// Converter turns content HTML into the output markup format.
type Converter interface {
	// Convert renders contentHTML as markdown. Headings use ATX style
	// ("#"-prefixed) rather than underlines.
	Convert(contentHTML string) (string, error)
}
