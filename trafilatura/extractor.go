// Package trafilatura provides a sitesift.Extractor variant that runs
// go-trafilatura as a boilerplate-removal pre-pass before node extraction.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sitesift/sitesift"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesift.Extractor at compile time.
var _ sitesift.Extractor = (*Extractor)(nil)

// Extractor isolates the main content with go-trafilatura, then delegates
// node extraction to the wrapped extractor. If trafilatura finds no content,
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result.ContentNode == nil {
		return e.next.Extract(rawHTML, basePath)
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil || strings.TrimSpace(contentHTML) == "" {
		return e.next.Extract(rawHTML, basePath)
	}

	nodes, err := e.next.Extract(contentHTML, basePath)
	if sitesift.ErrorCode(err) == sitesift.EEMPTY {
		// Trafilatura stripped too aggressively; retry on the raw page.
		return e.next.Extract(rawHTML, basePath)
	}
	return nodes, err
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
