// Package crawler provides the page-level building blocks of the crawl.
//
// # Components
//
//   - Mapper: pure URL to local filename derivation
//   - Processor: one-pass HTML traversal that collects the manual's
//     internal links and rewrites their anchors to local filenames
//   - Fetcher: HTTP download of one page with error containment
//
// The Processor uses golang.org/x/net/html rather than regex because it
// correctly handles the malformed HTML that real documentation sites
// serve, and re-serializing the mutated tree gives us link rewriting
// for free in the same pass as link discovery.
//
// None of these components know about the output directory, extraction,
// or conversion; the pipeline package composes them per page.
package crawler
