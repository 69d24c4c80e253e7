package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/sitesift/sitesift"
)

// Compile-time interface verification.
var _ sitesift.Index = (*Index)(nil)

// Index implements sitesift.Index using SQLite. Embeddings are stored as
// little-endian float32 blobs and ranked by cosine similarity in Go, which
// is fine at single-page scale.
type Index struct {
	db *DB
}

// NewIndex creates a new Index backed by db.
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// encodeVector serializes a float32 vector as a little-endian blob.
func encodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

// decodeVector deserializes a little-endian blob into a float32 vector.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}

// Init records the vector dimension and discards any previously stored
// chunks. The index holds one page at a time.
func (idx *Index) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return sitesift.Errorf(sitesift.EINVALID, "invalid vector dimension %d", dimension)
	}
	if _, err := idx.db.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
	}
	_, err := idx.db.ExecContext(ctx, `
		INSERT INTO index_meta (id, dimension) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET dimension = excluded.dimension
	`, dimension)
	if err != nil {
		return sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
	}
	return nil
}

// InsertBatch stores chunks with their embeddings.
func (idx *Index) InsertBatch(ctx context.Context, chunks []sitesift.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	dimension, err := idx.dimension(ctx)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if len(c.Embedding) != dimension {
			return sitesift.Errorf(sitesift.EINVALID,
				"chunk embedding dimension %d does not match index dimension %d",
				len(c.Embedding), dimension)
		}
	}

	for _, c := range chunks {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.ContentHash == "" {
			c.ContentHash = hashContent(c.Content)
		}
		_, err := idx.db.ExecContext(ctx, `
			INSERT INTO chunks (id, position, content, html_context, path, content_hash, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				position = excluded.position,
				content = excluded.content,
				html_context = excluded.html_context,
				path = excluded.path,
				content_hash = excluded.content_hash,
				embedding = excluded.embedding
		`, c.ID, c.Position, c.Content, c.HTMLContext, c.Path, c.ContentHash, encodeVector(c.Embedding))
		if err != nil {
			return sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
		}
	}
	return nil
}

// Search returns the topK stored chunks nearest to vector by cosine
// similarity, ordered descending with document position as tie-break.
func (idx *Index) Search(ctx context.Context, vector []float32, topK int) ([]sitesift.Match, error) {
	if topK <= 0 {
		topK = 10
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT id, position, content, html_context, path, content_hash, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
	}
	defer rows.Close()

	var matches []sitesift.Match
	for rows.Next() {
		var c sitesift.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.Position, &c.Content, &c.HTMLContext,
			&c.Path, &c.ContentHash, &blob); err != nil {
			return nil, sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
		}
		c.Embedding = decodeVector(blob)
		matches = append(matches, sitesift.Match{
			Chunk: c,
			Score: sitesift.Cosine(vector, c.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, sitesift.Errorf(sitesift.EUNAVAILABLE, "sqlite index unavailable: %v", err)
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

// dimension reads the recorded vector dimension, failing if Init has not run.
func (idx *Index) dimension(ctx context.Context) (int, error) {
	var dimension int
	err := idx.db.QueryRowContext(ctx, "SELECT dimension FROM index_meta WHERE id = 1").Scan(&dimension)
	if err != nil {
		return 0, sitesift.Errorf(sitesift.EINTERNAL, "index not initialized")
	}
	return dimension, nil
}
