package memory_test

import (
	"context"
	"testing"

	"github.com/sitesift/sitesift"
	"github.com/sitesift/sitesift/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Index implements sitesift.Index at compile time.
var _ sitesift.Index = (*memory.Index)(nil)

func seedIndex(t *testing.T) *memory.Index {
	t.Helper()

	idx := memory.NewIndex()
	require.NoError(t, idx.Init(context.Background(), 3))
	require.NoError(t, idx.InsertBatch(context.Background(), []sitesift.Chunk{
		{Content: "about cats", Position: 0, Embedding: []float32{1, 0, 0}},
		{Content: "about dogs", Position: 1, Embedding: []float32{0, 1, 0}},
		{Content: "about birds", Position: 2, Embedding: []float32{0, 0, 1}},
	}))
	return idx
}

func TestIndex_Search_OrdersBySimilarityDescending(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)

	matches, err := idx.Search(context.Background(), []float32{0.9, 0.1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "about cats", matches[0].Chunk.Content)
	assert.Equal(t, "about dogs", matches[1].Chunk.Content)
	assert.Equal(t, "about birds", matches[2].Chunk.Content)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestIndex_Search_TopKLargerThanStored(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestIndex_Search_TiesBrokenByDocumentOrder(t *testing.T) {
	t.Parallel()

	idx := memory.NewIndex()
	require.NoError(t, idx.Init(context.Background(), 2))
	require.NoError(t, idx.InsertBatch(context.Background(), []sitesift.Chunk{
		{Content: "later twin", Position: 5, Embedding: []float32{1, 0}},
		{Content: "earlier twin", Position: 2, Embedding: []float32{1, 0}},
	}))

	matches, err := idx.Search(context.Background(), []float32{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "earlier twin", matches[0].Chunk.Content)
	assert.Equal(t, "later twin", matches[1].Chunk.Content)
}

func TestIndex_Init_ClearsStoredChunks(t *testing.T) {
	t.Parallel()

	idx := seedIndex(t)
	require.NoError(t, idx.Init(context.Background(), 3))

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 10)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndex_InsertBatch_RejectsDimensionMismatch(t *testing.T) {
	t.Parallel()

	idx := memory.NewIndex()
	require.NoError(t, idx.Init(context.Background(), 3))

	err := idx.InsertBatch(context.Background(), []sitesift.Chunk{
		{Content: "bad", Embedding: []float32{1, 0}},
	})

	require.Error(t, err)
	assert.Equal(t, sitesift.EINVALID, sitesift.ErrorCode(err))
}

func TestIndex_InsertBatch_AssignsIDs(t *testing.T) {
	t.Parallel()

	idx := memory.NewIndex()
	require.NoError(t, idx.Init(context.Background(), 1))
	require.NoError(t, idx.InsertBatch(context.Background(), []sitesift.Chunk{
		{Content: "a", Embedding: []float32{1}},
	}))

	matches, err := idx.Search(context.Background(), []float32{1}, 1)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.NotEmpty(t, matches[0].Chunk.ID)
}

func TestIndex_Init_InvalidDimension(t *testing.T) {
	t.Parallel()

	idx := memory.NewIndex()
	err := idx.Init(context.Background(), 0)

	require.Error(t, err)
	assert.Equal(t, sitesift.EINVALID, sitesift.ErrorCode(err))
}
