// Package goquery provides the DOM-based implementation of
// sitesift.Extractor. It strips non-content subtrees, selects content
// containers using a prioritized set of structural selectors, and emits one
// RawNode per container in document order.
package goquery

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/sitesift/sitesift"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesift.Extractor at compile time.
var _ sitesift.Extractor = (*Extractor)(nil)

// unwantedSelector matches subtrees removed in full before any text
// extraction, so scripts, styles, and form chrome never leak into chunks.
const unwantedSelector = "script, style, noscript, iframe, object, embed, canvas, svg, button, input, select, textarea, nav"

// primaryTags are emitted whole, without descending into them.
var primaryTags = map[string]bool{
	"main":    true,
	"article": true,
	"section": true,
}

// primaryClasses marks divs that conventionally hold the main content.
var primaryClasses = map[string]bool{
	"content":       true,
	"main-content":  true,
	"post-content":  true,
	"entry-content": true,
	"article-body":  true,
	"text-content":  true,
	"post-body":     true,
}

// genericBlocks are the fallback granularity: the deepest block element with
// text in a subtree that no primary container claimed. Inline spans are never
// emitted on their own.
var genericBlocks = map[string]bool{
	"p": true, "li": true, "dd": true, "dt": true,
	"blockquote": true, "pre": true, "figcaption": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"td": true, "th": true, "div": true,
	"header": true, "footer": true, "aside": true, "summary": true,
}

// Extractor linearizes HTML into ordered content nodes.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML, removes non-content subtrees, and returns one
// RawNode per selected content container in document order. Containers are
// disjoint: once a container is emitted, its descendants are never emitted
// again, so chunks built from the nodes never overlap.
func (e *Extractor) Extract(rawHTML string, basePath string) ([]sitesift.RawNode, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitesift.Errorf(sitesift.EEMPTY, "no content: empty HTML input")
	}
	if basePath == "" {
		basePath = "/"
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitesift.Errorf(sitesift.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(unwantedSelector).Remove()

	w := &walker{
		basePath: basePath,
		seen:     make(map[uint64]bool),
	}
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			w.walk(n)
		}
	})

	if len(w.nodes) == 0 {
		return nil, sitesift.Errorf(sitesift.EEMPTY, "no content: page has no extractable content blocks")
	}
	return w.nodes, nil
}

// walker performs a single pre-order traversal, tracking element positions
// and the most recently seen heading for path construction.
type walker struct {
	basePath string
	seen     map[uint64]bool
	pos      int
	heading  string
	nodes    []sitesift.RawNode
}

// walk visits n and reports whether anything was emitted in its subtree.
// Primary containers are emitted on entry without descending. Otherwise
// children are visited first, and if none of them produced a node, the
// element itself is emitted when it is a block element with text.
func (w *walker) walk(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	w.pos++
	pos := w.pos
	tag := n.Data

	if isHeading(tag) {
		w.heading = nodeText(n)
	}

	if isPrimary(n) {
		emitted := w.emit(n, pos, containerHeading(n, w.heading))
		// Headings inside the container still govern what follows it.
		if h := lastHeading(n); h != "" {
			w.heading = h
		}
		// Count skipped descendants so later positions stay in document order.
		w.pos += countElements(n)
		return emitted
	}

	emitted := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if w.walk(c) {
			emitted = true
		}
	}
	if emitted {
		return true
	}

	if genericBlocks[tag] {
		return w.emit(n, pos, containerHeading(n, w.heading))
	}
	return false
}

// emit appends a RawNode for n unless its text is empty or an exact
// duplicate of an earlier node.
func (w *walker) emit(n *html.Node, pos int, heading string) bool {
	text := nodeText(n)
	if text == "" {
		return false
	}

	sum := xxhash.Sum64String(text)
	if w.seen[sum] {
		return false
	}
	w.seen[sum] = true

	w.nodes = append(w.nodes, sitesift.RawNode{
		Text:     text,
		HTML:     renderNode(n),
		Path:     w.buildPath(n, pos, heading),
		Position: pos,
	})
	return true
}

// buildPath returns a display locator for the node: the page path plus an
// anchor derived from the governing heading, the element id, a non-generated
// class, or finally a tag breadcrumb. Collisions are acceptable.
func (w *walker) buildPath(n *html.Node, pos int, heading string) string {
	if s := slugify(heading); s != "" {
		return w.basePath + "#" + s
	}
	for anc := n; anc != nil && anc.Type == html.ElementNode; anc = anc.Parent {
		if id := attr(anc, "id"); id != "" {
			return w.basePath + "#" + slugify(id)
		}
		for _, class := range strings.Fields(attr(anc, "class")) {
			// Skip machine-generated CSS-in-JS class names.
			if strings.HasPrefix(class, "css-") {
				continue
			}
			if s := slugify(class); s != "" {
				return w.basePath + "#" + s
			}
		}
	}
	return fmt.Sprintf("%s#%s-%d", w.basePath, n.Data, pos)
}

// containerHeading prefers the first heading inside the container, falling
// back to the most recent preceding heading.
func containerHeading(n *html.Node, preceding string) string {
	if h := firstHeading(n); h != "" {
		return h
	}
	return preceding
}

func isPrimary(n *html.Node) bool {
	if primaryTags[n.Data] {
		return true
	}
	if n.Data != "div" {
		return false
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		if primaryClasses[class] {
			return true
		}
	}
	return false
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// firstHeading returns the text of the first heading element in n's subtree.
func firstHeading(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isHeading(c.Data) {
			return nodeText(c)
		}
		if h := firstHeading(c); h != "" {
			return h
		}
	}
	return ""
}

// lastHeading returns the text of the last heading element in n's subtree.
func lastHeading(n *html.Node) string {
	last := ""
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isHeading(c.Data) {
			last = nodeText(c)
		}
		if h := lastHeading(c); h != "" {
			last = h
		}
	}
	return last
}

// countElements returns the number of element nodes in n's subtree,
// excluding n itself.
func countElements(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count += 1 + countElements(c)
		}
	}
	return count
}

// nodeText returns the whitespace-normalized text content of n's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// renderNode serializes n back to HTML.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// slugify converts text to a URL-friendly anchor: lowercase, with runs of
// non-alphanumeric characters collapsed into single hyphens.
func slugify(text string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen && sb.Len() > 0 {
			sb.WriteRune('-')
			prevHyphen = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
