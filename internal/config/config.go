package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The connection limits and timeout are deliberately conservative because
// the crawl targets a single documentation host.
const (
	// DefaultSeedURL is the index page of the Omarchy manual.
	// The crawl discovers every other page from the links on this page.
	DefaultSeedURL = "https://learn.omacom.io/2/the-omarchy-manual"

	// DefaultOutputDir is the directory that receives the markdown files.
	// The directory is destroyed and recreated at the start of every run,
	// so pointing this at a directory with unrelated content will lose it.
	DefaultOutputDir = "docs"

	// DefaultTimeout is the per-request timeout. Documentation pages are
	// small, so 30 seconds leaves generous headroom for slow networks
	// without letting a single stuck request stall a worker for long.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxConnections caps simultaneous open connections across
	// all requests in flight.
	DefaultMaxConnections = 8

	// DefaultMaxConnectionsPerHost caps simultaneous connections to one
	// host. Since the crawl only ever talks to the manual's host, this is
	// the limit that actually governs request concurrency.
	DefaultMaxConnectionsPerHost = 4

	// DefaultWorkers is the number of page pipelines allowed to run at
	// once. It equals the per-host connection limit: each pipeline holds
	// at most one connection at a time, so a larger pool would only queue
	// on the transport.
	DefaultWorkers = DefaultMaxConnectionsPerHost

	// DefaultUserAgent identifies the tool in HTTP requests.
	DefaultUserAgent = "fetchdocs/1.0 (+https://github.com/pkordel/omarchy-fetch-docs)"

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB is far beyond any real documentation page and prevents memory
	// exhaustion from a misbehaving server.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "fetchdocs"
)

// Config holds all configuration options for a crawl run.
// It is populated from CLI flags and the optional config file, validated
// once, and then passed through the application rather than held in
// global state.
type Config struct {
	// SeedURL is the absolute URL of the manual's index page.
	SeedURL string

	// OutputDir is the directory that receives one markdown file per page.
	// Destroyed and recreated at crawl start.
	OutputDir string

	// Timeout is the timeout applied to each HTTP request.
	Timeout time.Duration

	// MaxConnections is the global cap on simultaneous open connections.
	MaxConnections int

	// MaxConnectionsPerHost is the per-host cap on simultaneous connections.
	MaxConnectionsPerHost int

	// Workers bounds how many page pipelines run concurrently.
	Workers int

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is an explicit path to the configuration file.
	// If empty, the tool searches for .fetchdocs in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Site describes how the manual's URLs map to local filenames.
	// When nil, it is derived from SeedURL via DeriveSite.
	Site *Site

	// ReportFile, when set, is the path a markdown crawl report is
	// written to after the run.
	ReportFile string

	// Archive enables recording the run and its per-page outcomes in the
	// SQLite crawl archive.
	Archive bool

	// ArchiveDir is the directory holding the archive database.
	// Defaults to the XDG data directory when Archive is enabled.
	ArchiveDir string
}

// NewConfig creates a new Config with default values.
// Callers override specific fields after creation, then call Validate.
func NewConfig() *Config {
	return &Config{
		SeedURL:               DefaultSeedURL,
		OutputDir:             DefaultOutputDir,
		Timeout:               DefaultTimeout,
		MaxConnections:        DefaultMaxConnections,
		MaxConnectionsPerHost: DefaultMaxConnectionsPerHost,
		Workers:               DefaultWorkers,
		UserAgent:             DefaultUserAgent,
		MaxBodySize:           DefaultMaxBodySize,
	}
}

// ResolveSite fills in c.Site from the seed URL when the config file did
// not provide one. Partial site configurations are completed with
// defaults derived from the seed URL.
//
// The resolved site must carry a non-empty identifying path segment: an
// empty segment would make every root-relative href on the host look
// like a manual link.
func (c *Config) ResolveSite() error {
	derived, err := DeriveSite(c.SeedURL)
	if err != nil {
		return err
	}
	if c.Site == nil {
		c.Site = derived
	} else {
		c.Site.fillFrom(derived)
	}

	if c.Site.PathSegment == "" {
		return ErrNoPathSegment
	}
	return nil
}

// XDGDataDir returns the XDG data directory for fetchdocs.
// On Linux: ~/.local/share/fetchdocs
// On macOS: ~/Library/Application Support/fetchdocs
// On Windows: %LOCALAPPDATA%\fetchdocs
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for fetchdocs.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes
// later ones irrelevant.
func (c *Config) Validate() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}

	u, err := url.Parse(c.SeedURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidSeedURL
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.MaxConnections <= 0 || c.MaxConnectionsPerHost <= 0 {
		return ErrInvalidConnectionLimit
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
