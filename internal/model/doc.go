// Package model defines the core data structures shared across the
// crawl: per-page processing data, the tagged per-page outcome, and the
// run summary. It has no dependencies on other internal packages.
package model
