package model

import "time"

// Summary aggregates the results of one crawl run.
type Summary struct {
	// SeedURL is the index page the crawl started from.
	SeedURL string

	// OutputDir is the directory the markdown files were written to.
	OutputDir string

	// EntryFile is the filename the user should open first (the TOC).
	EntryFile string

	// Pages is the size of the page set, seed included.
	Pages int

	// Succeeded is the number of pages written to disk.
	Succeeded int

	// Failed is the number of pages that produced no file.
	Failed int

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// Duration is the elapsed wall-clock time of the whole run.
	Duration time.Duration

	// Outcomes holds the per-page results in completion order.
	Outcomes []Outcome
}

// Add records an outcome and updates the tallies.
func (s *Summary) Add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	if o.Success() {
		s.Succeeded++
	} else {
		s.Failed++
	}
}
