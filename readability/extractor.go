// Package readability provides a sitesift.Extractor variant that runs
// go-readability as a boilerplate-removal pre-pass before node extraction.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/sitesift/sitesift"
)

// Ensure Extractor implements sitesift.Extractor at compile time.
var _ sitesift.Extractor = (*Extractor)(nil)

// Extractor isolates the main content with go-readability, then delegates
// node extraction to the wrapped extractor. If readability finds no content,
// the raw HTML is passed through unchanged so the inner extractor's
// selector-based fallbacks still apply.
type Extractor struct {
	next sitesift.Extractor
}

// NewExtractor creates a new Extractor delegating to next.
func NewExtractor(next sitesift.Extractor) *Extractor {
	return &Extractor{next: next}
}

// Extract processes raw HTML and returns content nodes in document order.
func (e *Extractor) Extract(rawHTML string, basePath string) ([]sitesift.RawNode, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitesift.Errorf(sitesift.EEMPTY, "no content: empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return e.next.Extract(rawHTML, basePath)
	}

	nodes, err := e.next.Extract(article.Content, basePath)
	if sitesift.ErrorCode(err) == sitesift.EEMPTY {
		// Readability stripped too aggressively; retry on the raw page.
		return e.next.Extract(rawHTML, basePath)
	}
	return nodes, err
}
