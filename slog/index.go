package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitesift/sitesift"
)

// Ensure LoggingIndex implements sitesift.Index.
var _ sitesift.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with debug logging. The backend name keeps log
// lines readable when both a durable index and its fallback are in play.
type LoggingIndex struct {
	next    sitesift.Index
	backend string
	logger  *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next sitesift.Index, backend string, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, backend: backend, logger: logger}
}

// Init delegates to the wrapped index and logs the operation.
func (idx *LoggingIndex) Init(ctx context.Context, dimension int) (err error) {
	defer func(begin time.Time) {
		idx.logger.Info("index init",
			"backend", idx.backend,
			"dimension", dimension,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return idx.next.Init(ctx, dimension)
}

// InsertBatch delegates to the wrapped index and logs the operation.
func (idx *LoggingIndex) InsertBatch(ctx context.Context, chunks []sitesift.Chunk) (err error) {
	defer func(begin time.Time) {
		idx.logger.Info("index insert",
			"backend", idx.backend,
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return idx.next.InsertBatch(ctx, chunks)
}

// Search delegates to the wrapped index and logs the operation.
func (idx *LoggingIndex) Search(ctx context.Context, vector []float32, topK int) (matches []sitesift.Match, err error) {
	defer func(begin time.Time) {
		idx.logger.Info("index search",
			"backend", idx.backend,
			"top_k", topK,
			"matches", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return idx.next.Search(ctx, vector, topK)
}
