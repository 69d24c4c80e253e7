// Package qdrant provides the durable implementation of sitesift.Index
// backed by a Qdrant vector-search server, using its REST API.
//
// Every transport or server failure maps to an EUNAVAILABLE error so the
// caller can degrade to the in-memory fallback instead of failing the
// request.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sitesift/sitesift"
)

// DefaultTimeout bounds every call to the backend so a hung server triggers
// fallback rather than stalling the request.
const DefaultTimeout = 15 * time.Second

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "sitesift_chunks"

// Ensure Index implements sitesift.Index at compile time.
var _ sitesift.Index = (*Index)(nil)

// Index is a minimal REST client to Qdrant. It creates its collection lazily
// on first use and assumes cosine distance.
type Index struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Option configures an Index.
type Option func(*Index)

// WithAPIKey sets the api-key header sent with every request.
func WithAPIKey(key string) Option {
	return func(idx *Index) {
		idx.apiKey = key
	}
}

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(idx *Index) {
		idx.collection = name
	}
}

// WithTimeout sets the per-call timeout.
// Defaults to DefaultTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(idx *Index) {
		idx.client.Timeout = d
	}
}

// NewIndex creates a new Index talking to the Qdrant server at url.
func NewIndex(url string, opts ...Option) *Index {
	idx := &Index{
		url:        url,
		collection: DefaultCollection,
		client:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Init drops the collection and recreates it with the requested dimension.
// The index holds one page at a time, so points stored for an earlier request
// must never survive into the next; deleting first also avoids the conflict
// Qdrant reports for a create against an existing collection.
func (idx *Index) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return sitesift.Errorf(sitesift.EINVALID, "invalid vector dimension %d", dimension)
	}
	if err := idx.deleteCollection(ctx); err != nil {
		return err
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return idx.do(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", idx.url, idx.collection), body, nil)
}

// deleteCollection removes the collection. A collection that does not exist
// yet is not an error.
func (idx *Index) deleteCollection(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", idx.url, idx.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return sitesift.Errorf(sitesift.EINVALID, "building qdrant request: %v", err)
	}
	if idx.apiKey != "" {
		req.Header.Set("api-key", idx.apiKey)
	}

	resp, err := idx.client.Do(req)
	if err != nil {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "qdrant DELETE %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "qdrant DELETE %s: %s", url, resp.Status)
	}
	return nil
}

// InsertBatch upserts chunks as points carrying the embedding vector and the
// chunk payload. Chunks without an ID are assigned one.
func (idx *Index) InsertBatch(ctx context.Context, chunks []sitesift.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		points[i] = map[string]any{
			"id":     c.ID,
			"vector": c.Embedding,
			"payload": map[string]any{
				"content":      c.Content,
				"html_context": c.HTMLContext,
				"path":         c.Path,
				"position":     c.Position,
			},
		}
	}

	body := map[string]any{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", idx.url, idx.collection)
	return idx.do(ctx, http.MethodPut, url, body, nil)
}

// Search issues a nearest-neighbor query ordered by similarity descending.
func (idx *Index) Search(ctx context.Context, vector []float32, topK int) ([]sitesift.Match, error) {
	if topK <= 0 {
		topK = 10
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      string  `json:"id"`
			Score   float64 `json:"score"`
			Payload struct {
				Content     string `json:"content"`
				HTMLContext string `json:"html_context"`
				Path        string `json:"path"`
				Position    int    `json:"position"`
			} `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", idx.url, idx.collection)
	if err := idx.do(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}

	matches := make([]sitesift.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, sitesift.Match{
			Chunk: sitesift.Chunk{
				ID:          r.ID,
				Content:     r.Payload.Content,
				HTMLContext: r.Payload.HTMLContext,
				Path:        r.Payload.Path,
				Position:    r.Payload.Position,
			},
			Score: r.Score,
		})
	}
	return matches, nil
}

// do sends a JSON request and decodes the JSON response into out when out is
// non-nil.
func (idx *Index) do(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return sitesift.Errorf(sitesift.EINTERNAL, "encoding qdrant request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return sitesift.Errorf(sitesift.EINVALID, "building qdrant request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idx.apiKey != "" {
		req.Header.Set("api-key", idx.apiKey)
	}

	resp, err := idx.client.Do(req)
	if err != nil {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "qdrant %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "qdrant %s %s: %s", method, url, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return sitesift.Errorf(sitesift.EUNAVAILABLE, "decoding qdrant response: %v", err)
		}
	}
	return nil
}
