// Package memory provides the in-process fallback implementation of
// sitesift.Index. It keeps chunks and vectors in memory for the lifetime of
// one search request and answers queries by brute-force cosine similarity.
// It exists so the pipeline degrades to "works, not durable" when the
// durable backend is unreachable.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sitesift/sitesift"
)

// Ensure Index implements sitesift.Index at compile time.
var _ sitesift.Index = (*Index)(nil)

// Index is an in-memory vector index.
type Index struct {
	mu        sync.RWMutex
	dimension int
	chunks    []sitesift.Chunk
}

// NewIndex creates a new empty Index.
func NewIndex() *Index {
	return &Index{}
}

// Init prepares the index for vectors of the given dimension, discarding any
// previously stored chunks.
func (idx *Index) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return sitesift.Errorf(sitesift.EINVALID, "invalid vector dimension %d", dimension)
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.dimension = dimension
	idx.chunks = nil
	return nil
}

// InsertBatch stores chunks with their embeddings.
func (idx *Index) InsertBatch(_ context.Context, chunks []sitesift.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.dimension == 0 {
		return sitesift.Errorf(sitesift.EINTERNAL, "index not initialized")
	}
	for _, c := range chunks {
		if len(c.Embedding) != idx.dimension {
			return sitesift.Errorf(sitesift.EINVALID,
				"chunk embedding dimension %d does not match index dimension %d",
				len(c.Embedding), idx.dimension)
		}
	}
	for _, c := range chunks {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		idx.chunks = append(idx.chunks, c)
	}
	return nil
}

// Search returns the topK stored chunks nearest to vector by cosine
// similarity, ordered descending. Ties are broken by document position so
// results are deterministic.
func (idx *Index) Search(_ context.Context, vector []float32, topK int) ([]sitesift.Match, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if topK <= 0 {
		topK = 10
	}

	matches := make([]sitesift.Match, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		matches = append(matches, sitesift.Match{
			Chunk: c,
			Score: sitesift.Cosine(vector, c.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Chunk.Position < matches[j].Chunk.Position
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}
