package crawler

import (
	"net/url"
	"path"
	"strings"
)

// Mapper derives deterministic local filenames from manual page URLs.
// It is a pure value: no I/O, no state beyond its configuration, so one
// Mapper can be shared by all concurrent page pipelines.
type Mapper struct {
	// rootPath is the manual's index path with slashes stripped,
	// e.g. "2/the-omarchy-manual".
	rootPath string

	// tocFilename is the fixed filename for the index page.
	tocFilename string

	// extension is the markup extension, including the dot.
	extension string
}

// NewMapper creates a Mapper for a manual rooted at rootPath.
// rootPath may carry leading/trailing slashes; they are ignored.
func NewMapper(rootPath, tocFilename, extension string) *Mapper {
	return &Mapper{
		rootPath:    strings.Trim(rootPath, "/"),
		tocFilename: tocFilename,
		extension:   extension,
	}
}

// Filename maps a page URL (absolute or root-relative) to its local
// filename. The second return value is false when no filename can be
// derived, which happens for URLs whose path strips to empty; callers
// must skip such URLs.
//
// The mapping keeps only the last path segment, so two manual pages
// ending in the same segment would collide. The manual has no such
// pages today and no collision detection is performed.
func (m *Mapper) Filename(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		return "", false
	}
	if p == m.rootPath {
		return m.tocFilename, true
	}
	return path.Base(p) + m.extension, true
}
