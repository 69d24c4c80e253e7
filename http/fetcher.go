// Package http provides an HTTP-based implementation of sitesift.Fetcher
// with a browser-like header set. Servers that block unknown clients must
// fail visibly, not silently return empty content, so every transport or
// status failure maps to an EFETCH error.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sitesift/sitesift"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements sitesift.Fetcher at compile time.
var _ sitesift.Fetcher = (*Fetcher)(nil)

// browserHeaders mimics a conventional browser so that pages served only to
// recognized user agents are still retrievable.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

// Fetcher retrieves HTML content from URLs using HTTP requests.
// It does not execute JavaScript and is suitable for static pages.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit throttles fetches to rps requests per second per domain.
// Useful when many concurrent search requests target the same host.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = NewDomainLimiter(rps)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", sitesift.Errorf(sitesift.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", sitesift.Errorf(sitesift.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", sitesift.Errorf(sitesift.EFETCH, "fetching %q failed: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sitesift.Errorf(sitesift.EFETCH, "fetching %q failed: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitesift.Errorf(sitesift.EFETCH, "reading body of %q failed: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
