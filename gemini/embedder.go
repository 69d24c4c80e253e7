// Package gemini implements sitesift.Embedder using the Google Gemini
// embedding API.
package gemini

import (
	"context"

	"github.com/sitesift/sitesift"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// DefaultDimension is the requested output dimensionality. 768 keeps index
// payloads small while staying well within the model's supported range.
const DefaultDimension = 768

// Ensure Embedder implements sitesift.Embedder at compile time.
var _ sitesift.Embedder = (*Embedder)(nil)

// Embedder implements sitesift.Embedder using Google Gemini.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel overrides the embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithDimension overrides the requested output dimensionality.
func WithDimension(dimension int) Option {
	return func(e *Embedder) {
		if dimension > 0 {
			e.dimension = dimension
		}
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...Option) *Embedder {
	e := &Embedder{
		client:    client,
		model:     DefaultModel,
		dimension: DefaultDimension,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dimension returns the dimensionality of vectors produced by Embed.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// Embed returns the query embedding for text. Queries and documents use
// different task types so the model places them in the same vector space
// from opposite sides of the retrieval task.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns document embeddings for texts, in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

func (e *Embedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	for _, text := range texts {
		if text == "" {
			return nil, sitesift.Errorf(sitesift.EINVALID, "text to embed required")
		}
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	dimension := int32(e.dimension)
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dimension,
	})
	if err != nil {
		return nil, sitesift.Errorf(sitesift.EUNAVAILABLE, "gemini embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, sitesift.Errorf(sitesift.EINTERNAL,
			"gemini returned %d embeddings for %d texts", countEmbeddings(result), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, sitesift.Errorf(sitesift.EINTERNAL, "gemini returned empty embedding")
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func countEmbeddings(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
