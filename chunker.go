package sitesift

import "strings"

// DefaultMaxTokens is the default word-token budget per chunk.
const DefaultMaxTokens = 500

// SplitChunks re-segments extracted nodes into chunks of at most maxTokens
// word tokens. Nodes are accumulated greedily in document order; appending a
// node that would exceed the budget closes the current chunk. A single node
// larger than the budget is split at word boundaries, and within a single
// over-budget word at token boundaries, into sub-chunks that inherit its path
// and HTML context. Chunks never overlap and are never empty; whitespace-only
// remainders are dropped.
func SplitChunks(nodes []RawNode, maxTokens int) []Chunk {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var chunks []Chunk

	var texts []string // node texts accumulated into the open chunk
	var html []string
	var tokens int
	var path string
	var position int

	flush := func() {
		if len(texts) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Position:    position,
			Content:     strings.Join(texts, " "),
			HTMLContext: strings.Join(html, "\n"),
			Path:        path,
		})
		texts, html, tokens = nil, nil, 0
	}

	for _, node := range nodes {
		text := normalizeSpace(node.Text)
		if text == "" {
			continue
		}

		n := CountTokens(text)
		if n > maxTokens {
			// The node alone exceeds the budget: close the open chunk
			// and segment the node's text at token boundaries.
			flush()
			chunks = append(chunks, splitNode(node, text, maxTokens)...)
			continue
		}

		if tokens+n > maxTokens {
			flush()
		}
		if len(texts) == 0 {
			path = node.Path
			position = node.Position
		}
		texts = append(texts, text)
		html = append(html, node.HTML)
		tokens += n
	}
	flush()

	return chunks
}

// splitNode segments one oversized node into sub-chunks of at most maxTokens
// word tokens each. Sub-chunks share the node's path and HTML context, so
// only content length is capped, not context.
func splitNode(node RawNode, text string, maxTokens int) []Chunk {
	var chunks []Chunk

	emit := func(content string) {
		chunks = append(chunks, Chunk{
			Position:    node.Position,
			Content:     content,
			HTMLContext: node.HTML,
			Path:        node.Path,
		})
	}

	var fields []string
	var tokens int
	flush := func() {
		if len(fields) > 0 {
			emit(strings.Join(fields, " "))
			fields, tokens = nil, 0
		}
	}

	for field := range strings.FieldsSeq(text) {
		n := CountTokens(field)
		if n > maxTokens {
			// A whitespace-free field can exceed the budget on its own
			// (a long comma-separated list, a long URL). Split it at token
			// boundaries; tokens of a single field concatenate back to its
			// exact text.
			flush()
			toks := Tokenize(field)
			for len(toks) > maxTokens {
				emit(strings.Join(toks[:maxTokens], ""))
				toks = toks[maxTokens:]
			}
			fields = append(fields, strings.Join(toks, ""))
			tokens = len(toks)
			continue
		}
		if tokens+n > maxTokens {
			flush()
		}
		fields = append(fields, field)
		tokens += n
	}
	flush()

	return chunks
}

// normalizeSpace collapses all whitespace runs into single spaces and trims
// the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
