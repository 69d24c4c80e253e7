package main

import (
	"context"
	"io"

	"github.com/sitesift/sitesift"
	"github.com/sitesift/sitesift/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Searcher  *search.Searcher
	Converter sitesift.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search SearchCmd `cmd:"" help:"Search a web page for content matching a query"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	URL   string `arg:"" help:"Page URL to search"`
	Query string `arg:"" help:"Search query"`

	TopK      int    `short:"k" default:"10" help:"Maximum number of results"`
	MaxTokens int    `default:"500" help:"Word-token budget per chunk"`
	Model     string `env:"SITESIFT_EMBED_MODEL" help:"Embedding model id"`
	Extractor string `default:"dom" enum:"dom,readability,trafilatura" help:"Extraction strategy"`
	Format    string `short:"o" default:"json" enum:"json,text,markdown" help:"Output format"`

	QdrantURL string `env:"QDRANT_URL" help:"Qdrant base URL for the durable index"`
	QdrantKey string `env:"QDRANT_API_KEY" help:"Qdrant API key"`
	DB        string `env:"SITESIFT_DB" help:"SQLite database path for the durable index"`

	Verbose bool `short:"v" help:"Log pipeline steps to stderr"`
}
