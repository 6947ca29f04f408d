package config

import "errors"

// Configuration validation errors.
// These are package-level sentinel errors so callers can use errors.Is()
// for programmatic handling while still getting human-readable messages.
var (
	// ErrNoSeedURL is returned when no seed URL is configured.
	ErrNoSeedURL = errors.New("no seed URL specified")

	// ErrInvalidSeedURL is returned when the seed URL is not an absolute
	// URL with a host. Relative URLs cannot anchor link resolution.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be absolute with a host")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrNoPathSegment is returned when no identifying path segment can
	// be derived from the seed URL and none is configured. Without a
	// segment the internal-link predicate would match every
	// root-relative href on the host.
	ErrNoPathSegment = errors.New("seed URL has no path: cannot derive the manual's identifying segment")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	// A zero or negative timeout would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker pool size is not
	// positive. Zero workers would mean no pages are ever processed.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidConnectionLimit is returned when either connection cap is
	// not positive.
	ErrInvalidConnectionLimit = errors.New("invalid connection limit: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
