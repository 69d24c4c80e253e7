package sitesift_test

import (
	"strings"
	"testing"

	"github.com/sitesift/sitesift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks_AccumulatesNodesUpToBudget(t *testing.T) {
	t.Parallel()

	nodes := []sitesift.RawNode{
		{Text: "one two three", HTML: "<p>one two three</p>", Path: "/#a", Position: 0},
		{Text: "four five", HTML: "<p>four five</p>", Path: "/#b", Position: 1},
		{Text: "six seven eight", HTML: "<p>six seven eight</p>", Path: "/#c", Position: 2},
	}

	chunks := sitesift.SplitChunks(nodes, 5)

	require.Len(t, chunks, 2)
	assert.Equal(t, "one two three four five", chunks[0].Content)
	assert.Equal(t, "/#a", chunks[0].Path)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, "six seven eight", chunks[1].Content)
	assert.Equal(t, "/#c", chunks[1].Path)
	assert.Equal(t, 2, chunks[1].Position)
}

func TestSplitChunks_NeverExceedsBudget(t *testing.T) {
	t.Parallel()

	var nodes []sitesift.RawNode
	for i := 0; i < 20; i++ {
		nodes = append(nodes, sitesift.RawNode{
			Text:     strings.Repeat("word ", 7),
			Position: i,
		})
	}

	chunks := sitesift.SplitChunks(nodes, 10)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, sitesift.CountTokens(c.Content), 10)
		assert.Positive(t, sitesift.CountTokens(c.Content))
	}
}

func TestSplitChunks_SplitsOversizedNodeAtWordBoundaries(t *testing.T) {
	t.Parallel()

	node := sitesift.RawNode{
		Text:     "w1 w2 w3 w4 w5 w6 w7",
		HTML:     "<p>long</p>",
		Path:     "/#long",
		Position: 3,
	}

	chunks := sitesift.SplitChunks([]sitesift.RawNode{node}, 3)

	require.Len(t, chunks, 3)
	for _, c := range chunks {
		// Sub-chunks keep the source node's context, only content is capped.
		assert.Equal(t, "/#long", c.Path)
		assert.Equal(t, "<p>long</p>", c.HTMLContext)
		assert.Equal(t, 3, c.Position)
	}
	assert.Equal(t, "w1 w2 w3", chunks[0].Content)
	assert.Equal(t, "w4 w5 w6", chunks[1].Content)
	assert.Equal(t, "w7", chunks[2].Content)
}

func TestSplitChunks_SplitsOversizedFieldAtTokenBoundaries(t *testing.T) {
	t.Parallel()

	// 20 "a" runs and 19 commas: 39 tokens with no whitespace at all.
	list := strings.TrimSuffix(strings.Repeat("a,", 20), ",")
	node := sitesift.RawNode{
		Text:     list,
		HTML:     "<p>list</p>",
		Path:     "/#list",
		Position: 0,
	}

	chunks := sitesift.SplitChunks([]sitesift.RawNode{node}, 10)

	require.Len(t, chunks, 4)
	var rejoined []string
	for _, c := range chunks {
		assert.LessOrEqual(t, sitesift.CountTokens(c.Content), 10)
		assert.Positive(t, sitesift.CountTokens(c.Content))
		assert.Equal(t, "/#list", c.Path)
		rejoined = append(rejoined, c.Content)
	}
	assert.Equal(t, list, strings.Join(rejoined, ""))
}

func TestSplitChunks_OversizedFieldRemainderMergesWithFollowingFields(t *testing.T) {
	t.Parallel()

	// "b,b,b" is 5 tokens; after the 4-token cut its 1-token remainder
	// shares a chunk with the following short field.
	node := sitesift.RawNode{Text: "b,b,b tail", Position: 0}

	chunks := sitesift.SplitChunks([]sitesift.RawNode{node}, 4)

	require.Len(t, chunks, 2)
	assert.Equal(t, "b,b,", chunks[0].Content)
	assert.Equal(t, "b tail", chunks[1].Content)
	for _, c := range chunks {
		assert.LessOrEqual(t, sitesift.CountTokens(c.Content), 4)
	}
}

func TestSplitChunks_ConcatenationReproducesSourceText(t *testing.T) {
	t.Parallel()

	nodes := []sitesift.RawNode{
		{Text: "The quick brown fox jumps over the lazy dog.", Position: 0},
		{Text: "Pack my box with five dozen liquor jugs.", Position: 1},
		{Text: "How vexingly quick daft zebras jump!", Position: 2},
	}

	chunks := sitesift.SplitChunks(nodes, 8)

	var want []string
	for _, n := range nodes {
		want = append(want, strings.Join(strings.Fields(n.Text), " "))
	}
	var got []string
	for _, c := range chunks {
		got = append(got, c.Content)
	}
	assert.Equal(t, strings.Join(want, " "), strings.Join(got, " "))
}

func TestSplitChunks_DropsWhitespaceOnlyNodes(t *testing.T) {
	t.Parallel()

	nodes := []sitesift.RawNode{
		{Text: "   \n\t ", Position: 0},
		{Text: "real content here", Position: 1},
		{Text: "", Position: 2},
	}

	chunks := sitesift.SplitChunks(nodes, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "real content here", chunks[0].Content)
	assert.Equal(t, 1, chunks[0].Position)
}

func TestSplitChunks_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitesift.SplitChunks(nil, 100))
}

func TestSplitChunks_ZeroBudgetUsesDefault(t *testing.T) {
	t.Parallel()

	nodes := []sitesift.RawNode{{Text: "some text", Position: 0}}

	chunks := sitesift.SplitChunks(nodes, 0)

	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0].Content)
}
