package mock

import (
	"context"

	"github.com/sitesift/sitesift"
)

var _ sitesift.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of sitesift.Embedder.
type Embedder struct {
	DimensionFn  func() int
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Dimension() int {
	return e.DimensionFn()
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

// EmbedBatch falls back to per-text EmbedFn calls when EmbedBatchFn is unset.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.EmbedBatchFn != nil {
		return e.EmbedBatchFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.EmbedFn(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
