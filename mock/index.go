package mock

import (
	"context"

	"github.com/sitesift/sitesift"
)

var _ sitesift.Index = (*Index)(nil)

// Index is a mock implementation of sitesift.Index.
type Index struct {
	InitFn        func(ctx context.Context, dimension int) error
	InsertBatchFn func(ctx context.Context, chunks []sitesift.Chunk) error
	SearchFn      func(ctx context.Context, vector []float32, topK int) ([]sitesift.Match, error)
}

func (i *Index) Init(ctx context.Context, dimension int) error {
	return i.InitFn(ctx, dimension)
}

func (i *Index) InsertBatch(ctx context.Context, chunks []sitesift.Chunk) error {
	return i.InsertBatchFn(ctx, chunks)
}

func (i *Index) Search(ctx context.Context, vector []float32, topK int) ([]sitesift.Match, error) {
	return i.SearchFn(ctx, vector, topK)
}
