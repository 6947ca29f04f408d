// Package database provides the optional SQLite crawl archive.
// Each archived run stores its summary and every per-page outcome,
// including content hashes, so successive runs can be compared.
package database
