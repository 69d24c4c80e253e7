// Package search provides single-page semantic search orchestration.
// It coordinates fetching, extraction, chunking, embedding, indexing and
// ranking for one page and one query. All index state is per-request.
package search

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/sitesift/sitesift"
	"golang.org/x/sync/errgroup"
)

// Searcher orchestrates a single-page semantic search request.
type Searcher struct {
	Fetcher   sitesift.Fetcher
	Extractor sitesift.Extractor
	Embedder  sitesift.Embedder

	// Index is the primary backend. Fallback is used transparently when the
	// primary fails at build or query time; results are identical because
	// every backend ranks by the same cosine ordering.
	Index    sitesift.Index
	Fallback sitesift.Index

	Logger      *slog.Logger
	MaxTokens   int
	TopK        int
	Concurrency int
}

// Search fetches pageURL, indexes its content and returns the chunks most
// relevant to query, ranked by boosted similarity. A page with no extractable
// content yields an empty result set, not an error.
func (s *Searcher) Search(ctx context.Context, pageURL, query string) ([]sitesift.SearchResult, error) {
	if pageURL == "" {
		return nil, sitesift.Errorf(sitesift.EINVALID, "page URL required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, sitesift.Errorf(sitesift.EINVALID, "query required")
	}

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	nodes, err := s.Extractor.Extract(html, basePath(pageURL))
	if err != nil {
		if sitesift.ErrorCode(err) == sitesift.EEMPTY {
			return []sitesift.SearchResult{}, nil
		}
		return nil, err
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = sitesift.DefaultMaxTokens
	}
	chunks := sitesift.SplitChunks(nodes, maxTokens)
	if len(chunks) == 0 {
		return []sitesift.SearchResult{}, nil
	}

	embedded, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	index, err := s.buildIndex(ctx, embedded)
	if err != nil {
		return nil, err
	}

	queryVector, err := s.Embedder.Embed(ctx, sitesift.ExpandQuery(query))
	if err != nil {
		return nil, err
	}

	// Rank every stored chunk so the lexical boost can reorder beyond the
	// final top-k cut.
	matches, err := index.Search(ctx, queryVector, len(embedded))
	if err != nil && index != s.Fallback && s.Fallback != nil {
		s.logger().Warn("index search failed, rebuilding in fallback", "err", err)
		if index, err = s.rebuildFallback(ctx, embedded); err != nil {
			return nil, err
		}
		matches, err = index.Search(ctx, queryVector, len(embedded))
	}
	if err != nil {
		return nil, err
	}

	return s.rank(matches, query), nil
}

// embedChunks embeds chunk contents as documents. The whole batch is tried
// first; on failure each chunk is embedded individually with bounded
// concurrency and failing chunks are skipped.
func (s *Searcher) embedChunks(ctx context.Context, chunks []sitesift.Chunk) ([]sitesift.Chunk, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, batchErr := s.Embedder.EmbedBatch(ctx, texts)
	if batchErr == nil {
		if len(vectors) != len(chunks) {
			return nil, sitesift.Errorf(sitesift.EINTERNAL,
				"embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
		return chunks, nil
	}
	s.logger().Warn("batch embedding failed, embedding chunks individually", "err", batchErr)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	perChunk := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range chunks {
		g.Go(func() error {
			vs, err := s.Embedder.EmbedBatch(gctx, []string{chunks[i].Content})
			if err != nil || len(vs) != 1 {
				s.logger().Warn("skipping chunk that failed to embed",
					"position", chunks[i].Position, "err", err)
				return nil
			}
			perChunk[i] = vs[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	embedded := make([]sitesift.Chunk, 0, len(chunks))
	for i, v := range perChunk {
		if v == nil {
			continue
		}
		chunks[i].Embedding = v
		embedded = append(embedded, chunks[i])
	}
	if len(embedded) == 0 {
		return nil, sitesift.Errorf(sitesift.EUNAVAILABLE, "embedding unavailable: %v", batchErr)
	}
	return embedded, nil
}

// buildIndex initializes the primary index and inserts the embedded chunks,
// degrading to the fallback when the primary is unavailable. It returns the
// index that ended up holding the chunks.
func (s *Searcher) buildIndex(ctx context.Context, chunks []sitesift.Chunk) (sitesift.Index, error) {
	primary := s.Index
	if primary == nil {
		primary = s.Fallback
	}
	if primary == nil {
		return nil, sitesift.Errorf(sitesift.EINTERNAL, "no index configured")
	}

	err := s.build(ctx, primary, chunks)
	if err == nil {
		return primary, nil
	}
	if primary == s.Fallback || s.Fallback == nil {
		return nil, err
	}

	s.logger().Warn("durable index unavailable, falling back to in-memory index", "err", err)
	return s.rebuildFallback(ctx, chunks)
}

func (s *Searcher) rebuildFallback(ctx context.Context, chunks []sitesift.Chunk) (sitesift.Index, error) {
	if err := s.build(ctx, s.Fallback, chunks); err != nil {
		return nil, err
	}
	return s.Fallback, nil
}

func (s *Searcher) build(ctx context.Context, index sitesift.Index, chunks []sitesift.Chunk) error {
	if err := index.Init(ctx, len(chunks[0].Embedding)); err != nil {
		return err
	}
	return index.InsertBatch(ctx, chunks)
}

// rank applies the lexical boost to raw similarity scores, orders matches by
// boosted score descending with document position as tie-break, truncates to
// top-k and maps scores onto display percentages.
func (s *Searcher) rank(matches []sitesift.Match, query string) []sitesift.SearchResult {
	type ranked struct {
		chunk sitesift.Chunk
		score float64
	}

	scored := make([]ranked, len(matches))
	for i, m := range matches {
		score := m.Score + sitesift.ContentBoost(query, m.Chunk.Content)
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scored[i] = ranked{chunk: m.Chunk, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].chunk.Position < scored[j].chunk.Position
	})

	topK := s.TopK
	if topK <= 0 {
		topK = 10
	}
	if topK < len(scored) {
		scored = scored[:topK]
	}

	results := make([]sitesift.SearchResult, len(scored))
	for i, r := range scored {
		results[i] = sitesift.SearchResult{
			ChunkContent:        r.chunk.Content,
			OriginalHTMLContext: r.chunk.HTMLContext,
			Path:                r.chunk.Path,
			RelevanceScore:      r.score,
			MatchPercentage:     sitesift.MatchPercentage(r.score),
		}
	}
	return results
}

func (s *Searcher) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// basePath derives the extractor path prefix from the page URL.
func basePath(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}
