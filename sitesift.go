// Package sitesift provides the core of a single-page semantic search
// pipeline. Given a URL and a free-text query it fetches the page, extracts
// content blocks, splits them into bounded-size chunks, embeds them, and
// ranks the chunks by semantic relevance with a human-facing match
// percentage.
//
// This package contains domain types, interfaces, and the pure algorithms
// (word tokenization, chunking, query expansion, scoring) following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, gemini/, qdrant/).
package sitesift
