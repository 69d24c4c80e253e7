package sitesift_test

import (
	"testing"

	"github.com/sitesift/sitesift"
	"github.com/stretchr/testify/assert"
)

func TestContentBoost_RewardsQueryTermPresence(t *testing.T) {
	t.Parallel()

	query := "artificial intelligence"
	matching := "Artificial intelligence enables automation across many modern industries today."
	unrelated := "The weather was pleasant and mild for most of the afternoon hours."

	assert.Greater(t, sitesift.ContentBoost(query, matching), sitesift.ContentBoost(query, unrelated))
}

func TestContentBoost_RewardsTermsInSameSentence(t *testing.T) {
	t.Parallel()

	query := "vector search"
	together := "Vector search systems retrieve documents by embedding similarity rather than keywords. They scale well in practice for most workloads."
	apart := "Vector graphics render cleanly at any display size without artifacts. Search indexes require careful tuning to stay fast under load."

	assert.Greater(t, sitesift.ContentBoost(query, together), sitesift.ContentBoost(query, apart))
}

func TestContentBoost_PenalizesVeryShortContent(t *testing.T) {
	t.Parallel()

	assert.Negative(t, sitesift.ContentBoost("query", "contact us"))
}

func TestContentBoost_PenalizesRepeatedTokens(t *testing.T) {
	t.Parallel()

	repeated := "home home home home home home home home home home home home"
	prose := "This paragraph discusses a variety of distinct topics in ordinary prose form."

	assert.Less(t, sitesift.ContentBoost("unrelated", repeated), sitesift.ContentBoost("unrelated", prose))
}

func TestContentBoost_Bounded(t *testing.T) {
	t.Parallel()

	// Saturate every signal: all terms present, high frequency, co-occurring.
	query := "alpha beta"
	content := "alpha beta alpha beta alpha beta alpha beta alpha word other things entirely different tokens here. alpha beta again together once more in this sentence."

	boost := sitesift.ContentBoost(query, content)

	assert.LessOrEqual(t, boost, 0.35)
	assert.Positive(t, boost)
}

func TestContentBoost_EmptyQuery(t *testing.T) {
	t.Parallel()

	assert.Zero(t, sitesift.ContentBoost("", "some content"))
}

func TestMatchPercentage_Endpoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, sitesift.MatchPercentage(0))
	assert.Equal(t, 100.0, sitesift.MatchPercentage(1))
}

func TestMatchPercentage_Monotonic(t *testing.T) {
	t.Parallel()

	prev := sitesift.MatchPercentage(0)
	for i := 1; i <= 1000; i++ {
		score := float64(i) / 1000
		pct := sitesift.MatchPercentage(score)
		assert.GreaterOrEqual(t, pct, prev, "score %v", score)
		prev = pct
	}
}

func TestMatchPercentage_TypicalMatchBand(t *testing.T) {
	t.Parallel()

	// Typical cosine scores for real matches display in the 60-95% band.
	assert.InDelta(t, 60, sitesift.MatchPercentage(0.45), 0.01)
	assert.InDelta(t, 95, sitesift.MatchPercentage(0.85), 0.01)
	assert.Greater(t, sitesift.MatchPercentage(0.65), 60.0)
	assert.Less(t, sitesift.MatchPercentage(0.65), 95.0)
}

func TestMatchPercentage_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, sitesift.MatchPercentage(-0.5))
	assert.Equal(t, 100.0, sitesift.MatchPercentage(1.5))
}

func TestMatchPercentage_Deterministic(t *testing.T) {
	t.Parallel()

	first := sitesift.MatchPercentage(0.731)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sitesift.MatchPercentage(0.731))
	}
}
