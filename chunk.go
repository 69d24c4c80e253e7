package sitesift

import "context"

// Chunk is the unit of indexing and retrieval: a bounded-size slice of page
// text plus the HTML block it was extracted from. Chunks are created during
// chunking of one page, inserted into an Index, and retained only for the
// lifetime of that search request.
type Chunk struct {
	ID          string    `json:"id"`
	Position    int       `json:"position"` // document order, inherited from the source node
	Content     string    `json:"content"`
	HTMLContext string    `json:"htmlContext"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if c.Position < 0 {
		return Errorf(EINVALID, "chunk position must be non-negative")
	}
	return nil
}

// Match is a raw index hit: a stored chunk with its cosine similarity to the
// query vector.
type Match struct {
	Chunk Chunk
	Score float64
}

// SearchResult is the caller-facing ranked result. Field names mirror the
// wire format consumed by the HTTP layer.
type SearchResult struct {
	ChunkContent        string  `json:"chunk_content"`
	OriginalHTMLContext string  `json:"original_html_context"`
	Path                string  `json:"path"`
	RelevanceScore      float64 `json:"relevance_score"`
	MatchPercentage     float64 `json:"match_percentage"`
}

// Index stores embedded chunks and answers nearest-neighbor queries.
// Implementations must order Search results by similarity descending and
// return at most topK matches. The ranker only sees this capability set,
// never the concrete backend.
type Index interface {
	// Init prepares the index for vectors of the given dimension,
	// creating backend schema lazily if absent.
	Init(ctx context.Context, dimension int) error

	// InsertBatch upserts chunks with their embeddings.
	InsertBatch(ctx context.Context, chunks []Chunk) error

	// Search returns the topK stored chunks nearest to vector by cosine
	// similarity, ordered descending.
	Search(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
