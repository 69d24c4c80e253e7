package sitesift

// RawNode is one extracted DOM content unit. Nodes are created once per page
// fetch, are immutable, and are discarded after chunk construction.
type RawNode struct {
	// Text is the container's flattened, whitespace-normalized inner text.
	Text string

	// HTML is the serialized markup of the smallest enclosing block.
	HTML string

	// Path is a structural locator for display and navigation, e.g.
	// "/docs#getting-started". It is not guaranteed globally unique.
	Path string

	// Position is the pre-order DOM index of the container. It defines
	// document order and breaks ranking ties deterministically.
	Position int
}

// Extractor turns raw HTML into an ordered sequence of content nodes.
// Non-content subtrees (script, style, navigation, form controls) are removed
// in full before any text extraction so they never leak into chunks.
type Extractor interface {
	// Extract parses rawHTML and returns content nodes in document order.
	// basePath is the URL path of the page, used to build node paths.
	// Returns an EEMPTY error if no usable content remains after cleaning.
	Extract(rawHTML string, basePath string) ([]RawNode, error)
}
