package model

// PageData holds the result of one HTML processing pass over a page.
// It is created while processing a single page and consumed immediately
// by the pipeline step that extracts content; it is never shared across
// concurrent page pipelines.
type PageData struct {
	// InternalLinks is the set of absolute URLs of manual pages
	// discovered on this page. Set semantics: duplicate hrefs collapse.
	InternalLinks map[string]struct{}

	// UpdatedHTML is the page's HTML with internal anchors rewritten to
	// local filenames.
	UpdatedHTML string

	// Title is the page title from the <title> tag, if present.
	Title string
}

// NewPageData returns a PageData with an initialized link set.
func NewPageData() *PageData {
	return &PageData{
		InternalLinks: make(map[string]struct{}),
	}
}

// AddLink records a discovered internal link.
func (p *PageData) AddLink(absoluteURL string) {
	p.InternalLinks[absoluteURL] = struct{}{}
}
