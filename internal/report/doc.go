// Package report renders crawl summaries. The console writer prints
// the human-readable end-of-run lines; the markdown writer produces a
// report file with run information and a per-page outcome table.
package report
