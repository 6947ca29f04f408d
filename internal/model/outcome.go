package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ExtractionErrorMarker is the content recorded for a page whose HTML
// fetched and parsed correctly but yielded no readable content. No file
// is written for such a page and it counts as a failure; the marker is
// kept so logs and the crawl archive can tell this case apart from a
// network failure.
const ExtractionErrorMarker = "<error>Page failed to be simplified from HTML</error>"

// OutcomeKind classifies the result of one page pipeline.
//
// A tagged kind rather than a bare string keeps aggregation exhaustive:
// the orchestrator counts exactly the OutcomeSuccess case as a success
// instead of guessing from the shape of a value.
type OutcomeKind int

const (
	// OutcomeSuccess means the page was fetched, converted, and written.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeFetchError means the page could not be downloaded
	// (connection error, timeout, or non-2xx status).
	OutcomeFetchError

	// OutcomeNoFilename means no local filename could be derived from
	// the page URL; nothing was written.
	OutcomeNoFilename

	// OutcomeExtractionEmpty means content extraction produced nothing;
	// nothing was written and Content carries ExtractionErrorMarker.
	OutcomeExtractionEmpty

	// OutcomeProcessError means HTML processing, extraction, or
	// conversion failed with an error.
	OutcomeProcessError

	// OutcomeWriteError means the converted markdown could not be
	// written to disk.
	OutcomeWriteError
)

// String returns a short name for the outcome kind, used in logs, the
// markdown report, and the crawl archive.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFetchError:
		return "fetch_error"
	case OutcomeNoFilename:
		return "no_filename"
	case OutcomeExtractionEmpty:
		return "extraction_empty"
	case OutcomeProcessError:
		return "process_error"
	case OutcomeWriteError:
		return "write_error"
	default:
		return "unknown"
	}
}

// Outcome is the per-page result of the pipeline.
type Outcome struct {
	// URL is the page URL this outcome belongs to.
	URL string

	// Filename is the local filename the page maps to, when derivable.
	Filename string

	// Kind classifies the result.
	Kind OutcomeKind

	// Title is the page title, when the page was fetched and parsed.
	Title string

	// Content is the converted markdown on success, or
	// ExtractionErrorMarker when extraction came back empty.
	Content string

	// Err is the underlying error for failure kinds, if any.
	Err error

	// Duration is the wall-clock time the pipeline spent on this page.
	Duration time.Duration
}

// Success reports whether this outcome counts toward the success tally.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// ContentHash returns the SHA-256 hex digest of the outcome's content,
// or empty when there is no content. Used by the crawl archive for
// change detection between runs.
func (o Outcome) ContentHash() string {
	if o.Content == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(o.Content))
	return hex.EncodeToString(sum[:])
}
