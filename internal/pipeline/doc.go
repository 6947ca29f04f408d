// Package pipeline orchestrates the crawl.
//
// Pipeline handles one page end to end: fetch, single-pass link rewrite,
// readable-content extraction, markdown conversion, and the file write.
// Batch drives a whole run: it resets the output directory, fixes the
// page set from the seed page's links (a two-level crawl, never a
// transitive closure), fans the page pipelines out under a bounded
// worker pool via errgroup.SetLimit, and aggregates the per-page
// outcomes into a summary.
//
// Failure containment is the organizing principle: a page's failure is
// recorded in its outcome and never aborts sibling pages or the run.
package pipeline
