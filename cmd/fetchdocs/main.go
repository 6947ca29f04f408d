// Package main provides the entry point for the fetchdocs CLI.
//
// fetchdocs mirrors a single-site documentation manual as markdown: it
// fetches the manual's index page, discovers the pages it links to,
// downloads each one concurrently, extracts the readable content, and
// writes one markdown file per page with internal links rewritten to
// point at the local files.
//
// Usage:
//
//	fetchdocs fetch
//	fetchdocs fetch https://learn.omacom.io/2/the-omarchy-manual -o docs
//
// See --help for all available options.
package main

// main is the entry point for fetchdocs.
func main() {
	Execute()
}
