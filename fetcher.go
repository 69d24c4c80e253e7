package sitesift

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch downloads the page at url and returns its HTML.
	// The context controls timeout and cancellation. Network failures,
	// timeouts, and non-2xx statuses return an EFETCH error; a blocked
	// fetch is never reported as empty content.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
