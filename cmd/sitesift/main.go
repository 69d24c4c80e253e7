package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sitesift/sitesift"
	"github.com/sitesift/sitesift/gemini"
	ssgoquery "github.com/sitesift/sitesift/goquery"
	"github.com/sitesift/sitesift/htmltomarkdown"
	sifthttp "github.com/sitesift/sitesift/http"
	"github.com/sitesift/sitesift/memory"
	"github.com/sitesift/sitesift/qdrant"
	"github.com/sitesift/sitesift/readability"
	"github.com/sitesift/sitesift/search"
	siftslog "github.com/sitesift/sitesift/slog"
	"github.com/sitesift/sitesift/sqlite"
	"github.com/sitesift/sitesift/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, open only when the sqlite index backend is selected.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesift"),
		kong.Description("Semantic search inside a single web page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "search" {
		searcher, err := m.buildSearcher(ctx, &cli.Search, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		defer searcher.Fetcher.Close()

		deps.Searcher = searcher
		deps.Converter = htmltomarkdown.NewConverter()
	}

	return kongCtx.Run(deps)
}

// buildSearcher wires the pipeline according to the search command's flags.
func (m *Main) buildSearcher(ctx context.Context, cmd *SearchCmd, stderr io.Writer) (*search.Searcher, error) {
	logger := slog.New(slog.DiscardHandler)
	if cmd.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var fetcher sitesift.Fetcher = sifthttp.NewFetcher()
	if cmd.Verbose {
		fetcher = siftslog.NewLoggingFetcher(fetcher, logger)
	}

	index, err := m.buildIndex(cmd, logger)
	if err != nil {
		return nil, err
	}

	return &search.Searcher{
		Fetcher:   fetcher,
		Extractor: buildExtractor(cmd.Extractor),
		Embedder:  gemini.NewEmbedder(client, gemini.WithModel(cmd.Model)),
		Index:     index,
		Fallback:  memory.NewIndex(),
		Logger:    logger,
		MaxTokens: cmd.MaxTokens,
		TopK:      cmd.TopK,
	}, nil
}

// buildIndex selects the durable backend: qdrant when a URL is configured,
// sqlite when a database path is, otherwise the in-memory index.
func (m *Main) buildIndex(cmd *SearchCmd, logger *slog.Logger) (sitesift.Index, error) {
	switch {
	case cmd.QdrantURL != "":
		var opts []qdrant.Option
		if cmd.QdrantKey != "" {
			opts = append(opts, qdrant.WithAPIKey(cmd.QdrantKey))
		}
		return siftslog.NewLoggingIndex(qdrant.NewIndex(cmd.QdrantURL, opts...), "qdrant", logger), nil
	case cmd.DB != "":
		m.DB = sqlite.NewDB(cmd.DB)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", cmd.DB, err)
		}
		return siftslog.NewLoggingIndex(sqlite.NewIndex(m.DB), "sqlite", logger), nil
	default:
		return siftslog.NewLoggingIndex(memory.NewIndex(), "memory", logger), nil
	}
}

func buildExtractor(name string) sitesift.Extractor {
	dom := ssgoquery.NewExtractor()
	switch name {
	case "readability":
		return readability.NewExtractor(dom)
	case "trafilatura":
		return trafilatura.NewExtractor(dom)
	default:
		return dom
	}
}
