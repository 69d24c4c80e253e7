package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sitesift/sitesift"
	sshttp "github.com/sitesift/sitesift/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements sitesift.Fetcher at compile time.
var _ sitesift.Fetcher = (*sshttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>hello</p></body></html>"))
	}))
	t.Cleanup(srv.Close)

	f := sshttp.NewFetcher()
	t.Cleanup(func() { f.Close() })

	html, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "<p>hello</p>")
}

func TestFetcher_Fetch_SendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
	}))
	t.Cleanup(srv.Close)

	f := sshttp.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
	assert.Contains(t, accept, "text/html")
}

func TestFetcher_Fetch_NonSuccessStatusIsFetchError(t *testing.T) {
	t.Parallel()

	statuses := []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError}
	for _, status := range statuses {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		t.Cleanup(srv.Close)

		f := sshttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err, "status %d", status)
		assert.Equal(t, sitesift.EFETCH, sitesift.ErrorCode(err))
	}
}

func TestFetcher_Fetch_NetworkErrorIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := sshttp.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, sitesift.EFETCH, sitesift.ErrorCode(err))
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	f := sshttp.NewFetcher(sshttp.WithTimeout(50 * time.Millisecond))
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, sitesift.EFETCH, sitesift.ErrorCode(err))
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	t.Parallel()

	f := sshttp.NewFetcher()
	_, err := f.Fetch(context.Background(), "://not-a-url")

	require.Error(t, err)
	assert.Equal(t, sitesift.EINVALID, sitesift.ErrorCode(err))
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	limiter := sshttp.NewDomainLimiter(1000)

	err := limiter.Wait(context.Background(), "example.com")

	assert.NoError(t, err)
}

func TestDomainLimiter_Wait_CanceledContext(t *testing.T) {
	t.Parallel()

	limiter := sshttp.NewDomainLimiter(0.001)
	// Consume the initial token so the next wait has to block.
	require.NoError(t, limiter.Wait(context.Background(), "example.com"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx, "example.com")

	assert.Error(t, err)
}
