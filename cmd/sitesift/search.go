package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sitesift/sitesift"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.URL, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesift.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "text":
		return writeText(deps.Stdout, results)
	case "markdown":
		return writeMarkdown(deps.Stdout, deps.Converter, results)
	default:
		return writeJSON(deps.Stdout, results)
	}
}

func writeJSON(w io.Writer, results []sitesift.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeText(w io.Writer, results []sitesift.SearchResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching content found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(w, "%d. [%.f%%] %s\n", i+1, r.MatchPercentage, r.Path)
		fmt.Fprintf(w, "   %s\n", excerpt(r.ChunkContent, 200))
	}
	return nil
}

func writeMarkdown(w io.Writer, converter sitesift.Converter, results []sitesift.SearchResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching content found.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(w, "### %s (%.f%% match)\n\n", r.Path, r.MatchPercentage)
		md, err := converter.Convert(r.OriginalHTMLContext)
		if err != nil {
			md = r.ChunkContent
		}
		fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(md))
	}
	return nil
}

// excerpt truncates s to at most n runes, preferring a word boundary.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	end := 0
	for i := range s {
		if n == 0 {
			end = i
			break
		}
		n--
	}
	cut := s[:end]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
