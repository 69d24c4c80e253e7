package sitesift

import "context"

// Embedder maps text into fixed-dimension dense vectors for similarity
// comparison. Implementations are safe for concurrent use and deterministic
// for a fixed model version: the same text always yields the same vector.
type Embedder interface {
	// Dimension returns the length of vectors produced by this embedder.
	Dimension() int

	// Embed returns the vector for a single query or chunk text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, order-preserving.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
