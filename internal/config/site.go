package config

import (
	"net/url"
	"path"
	"strings"
)

// Site describes how one documentation manual maps onto local files.
// The zero value is not usable; obtain a Site from DeriveSite or from
// the configuration file (missing fields are filled from the seed URL).
type Site struct {
	// RootPath is the URL path of the manual's index page, e.g.
	// "/2/the-omarchy-manual". An anchor pointing exactly here is
	// rewritten to TOCFilename.
	RootPath string `yaml:"rootPath,omitempty"`

	// PathSegment is the substring that identifies a root-relative href
	// as belonging to the manual, matched case-insensitively, e.g.
	// "the-omarchy-manual".
	PathSegment string `yaml:"pathSegment,omitempty"`

	// TOCFilename is the fixed local filename for the index page.
	TOCFilename string `yaml:"tocFilename,omitempty"`

	// Extension is the markup file extension, including the dot.
	Extension string `yaml:"extension,omitempty"`
}

// DeriveSite builds a Site from the seed URL: the root path is the
// seed's path, the identifying segment is its last element, and the
// output format is markdown with a toc.md index.
func DeriveSite(seedURL string) (*Site, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, err
	}

	rootPath := strings.TrimRight(u.Path, "/")
	segment := path.Base(rootPath)
	if segment == "." || segment == "/" {
		segment = ""
	}

	return &Site{
		RootPath:    rootPath,
		PathSegment: strings.ToLower(segment),
		TOCFilename: "toc.md",
		Extension:   ".md",
	}, nil
}

// fillFrom completes unset fields with values from another Site.
func (s *Site) fillFrom(other *Site) {
	if s.RootPath == "" {
		s.RootPath = other.RootPath
	}
	if s.PathSegment == "" {
		s.PathSegment = other.PathSegment
	}
	s.PathSegment = strings.ToLower(s.PathSegment)
	if s.TOCFilename == "" {
		s.TOCFilename = other.TOCFilename
	}
	if s.Extension == "" {
		s.Extension = other.Extension
	}
}
