package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetcher downloads raw HTML for single pages.
// All concurrent page pipelines share one Fetcher and therefore one
// HTTP client and connection pool.
//
// A failed fetch is a recoverable, per-page condition: the caller logs
// the returned error and treats the page as "no content". Nothing a
// Fetcher returns is ever fatal to the crawl.
type Fetcher struct {
	// client is the shared HTTP client. Its transport carries the
	// global and per-host connection limits.
	client *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits how many bytes of a response body are read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher around the given HTTP client.
// The client is injected rather than constructed here so that the
// two-tier connection limits live in one place (NewHTTPClient) and
// tests can substitute their own client.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   "fetchdocs/1.0",
		maxBodySize: 5 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewHTTPClient builds the shared HTTP client: a per-request timeout, a
// global cap on open connections, and a per-host cap. The per-host cap
// is what actually bounds in-flight requests here, since the crawl only
// talks to the manual's host.
func NewHTTPClient(timeout time.Duration, maxConns, maxConnsPerHost int) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxConnsPerHost:     maxConnsPerHost,
			MaxIdleConns:        maxConns,
			MaxIdleConnsPerHost: maxConnsPerHost,
		},
	}
}

// Fetch performs a GET request for pageURL and returns the response
// body as a string. Non-UTF-8 pages are transcoded based on the
// Content-Type header and document markers.
//
// Any network error, timeout, or non-2xx status yields an error and no
// content.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
