package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/pkordel/omarchy-fetch-docs/internal/model"
)

// Processor performs a single traversal of one page's HTML that both
// collects the manual's internal links and rewrites their anchors to
// local filenames. Doing both in one pass avoids parsing the document
// twice.
//
// A Processor belongs to exactly one page-processing call. Its URL
// resolution memo is per-instance, never process-wide, so concurrent
// page pipelines stay isolated.
type Processor struct {
	// base is the page's own URL, used to resolve root-relative hrefs.
	base *url.URL

	// rootPath is the manual's index path, e.g. "/2/the-omarchy-manual".
	// An href equal to it (modulo surrounding slashes) becomes the TOC
	// filename.
	rootPath string

	// segment identifies manual links: a root-relative href whose
	// lowercased path contains this substring belongs to the manual.
	segment string

	// mapper derives local filenames for rewritten anchors.
	mapper *Mapper

	// resolved memoizes href to absolute URL for this page. The same
	// relative link often appears many times on one page (navigation
	// menus), so resolving it once is enough.
	resolved map[string]string
}

// NewProcessor creates a Processor for one page.
// baseURL is the URL of the page being processed; rootPath and segment
// come from the site configuration.
func NewProcessor(baseURL, rootPath, segment string, mapper *Mapper) (*Processor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Processor{
		base:     u,
		rootPath: strings.Trim(rootPath, "/"),
		segment:  strings.ToLower(segment),
		mapper:   mapper,
		resolved: make(map[string]string),
	}, nil
}

// Process parses htmlText, walks the document once, and returns the set
// of discovered internal links together with the re-serialized HTML in
// which internal anchors point at local filenames.
//
// Anchors that do not match the internal-link predicate, including
// external links, are left byte-for-byte unmodified. Processing is
// idempotent: a rewritten href like "install.md" no longer starts with
// "/" and so never matches again.
func (p *Processor) Process(htmlText string) (*model.PageData, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, err
	}

	data := model.NewPageData()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if data.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					data.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				p.processAnchor(n, data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return nil, err
	}
	data.UpdatedHTML = sb.String()

	return data, nil
}

// processAnchor collects and rewrites a single <a> element.
func (p *Processor) processAnchor(n *html.Node, data *model.PageData) {
	href := getAttr(n, "href")
	if href == "" {
		return
	}

	// Internal-link predicate: root-relative and naming the manual.
	if !strings.HasPrefix(href, "/") || !strings.Contains(strings.ToLower(href), p.segment) {
		return
	}

	if absolute := p.resolve(href); absolute != "" {
		data.AddLink(absolute)
	}

	// Rewrite to the local filename. The manual root maps to the TOC;
	// anything else goes through the Mapper. Underivable hrefs keep
	// their original value.
	if strings.Trim(href, "/") == p.rootPath {
		setAttr(n, "href", p.mapper.tocFilename)
	} else if name, ok := p.mapper.Filename(href); ok {
		setAttr(n, "href", name)
	}
}

// resolve returns the absolute URL for a root-relative href, memoized
// for the lifetime of this Processor.
func (p *Processor) resolve(href string) string {
	if cached, ok := p.resolved[href]; ok {
		return cached
	}

	var absolute string
	if ref, err := url.Parse(href); err == nil {
		absolute = p.base.ResolveReference(ref).String()
	}
	p.resolved[href] = absolute
	return absolute
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// setAttr replaces an attribute value on an HTML node.
// The attribute is added if not present.
func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
