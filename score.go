package sitesift

import (
	"math"
	"strings"
)

// Boost bounds. The lexical adjustment refines the semantic ranking, it
// never replaces it: the total boost is capped well below the raw
// similarity range.
const (
	maxTermRatioBoost  = 0.15
	maxFrequencyBoost  = 0.10
	maxProximityBoost  = 0.10
	boilerplatePenalty = 0.05
)

// ContentBoost returns a small lexical adjustment for a chunk's raw
// similarity, derived from signals independent of the vector space: the
// share of query terms present in the content, their total frequency,
// their co-occurrence within single sentences, and a penalty for
// boilerplate-looking content. The query is the original, unexpanded query.
func ContentBoost(query, content string) float64 {
	contentLower := strings.ToLower(content)
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}

	matched := 0
	occurrences := 0
	for _, term := range terms {
		n := strings.Count(contentLower, term)
		if n > 0 {
			matched++
		}
		occurrences += n
	}

	termRatio := float64(matched) / float64(len(terms)) * maxTermRatioBoost
	frequency := math.Min(maxFrequencyBoost, float64(occurrences)*0.02)

	// Terms appearing together in one sentence signal a focused match.
	proximity := 0.0
	if len(terms) > 1 {
		for _, sentence := range splitSentences(contentLower) {
			all := true
			for _, term := range terms {
				if !strings.Contains(sentence, term) {
					all = false
					break
				}
			}
			if all {
				proximity += 0.05
			}
		}
		proximity = math.Min(maxProximityBoost, proximity)
	}

	boost := termRatio + frequency + proximity
	if isBoilerplate(contentLower) {
		boost -= boilerplatePenalty
	}
	return boost
}

// isBoilerplate reports whether content looks like navigation or filler:
// very short, or composed largely of repeated short tokens.
func isBoilerplate(content string) bool {
	words := strings.Fields(content)
	if len(words) < 8 {
		return true
	}
	distinct := make(map[string]bool, len(words))
	for _, w := range words {
		distinct[w] = true
	}
	return float64(len(distinct))/float64(len(words)) < 0.3
}

// splitSentences splits text on sentence-ending punctuation.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// percentageCurve anchors the strictly increasing piecewise-linear mapping
// from boosted scores to display percentages. Typical cosine scores for a
// real match land between 0.45 and 0.85, which this curve stretches to the
// 60-95% display band while still pinning 0 to 0% and 1 to 100%.
var percentageCurve = [][2]float64{
	{0, 0},
	{0.45, 60},
	{0.85, 95},
	{1, 100},
}

// MatchPercentage maps a boosted score in [0,1] onto a 0-100 display
// percentage. The mapping is fixed, strictly increasing, and free of
// randomness; inputs outside [0,1] are clamped. The result is rounded to
// two decimal places.
func MatchPercentage(score float64) float64 {
	if score <= 0 {
		return 0
	}
	if score >= 1 {
		return 100
	}
	for i := 1; i < len(percentageCurve); i++ {
		lo, hi := percentageCurve[i-1], percentageCurve[i]
		if score <= hi[0] {
			t := (score - lo[0]) / (hi[0] - lo[0])
			return round2(lo[1] + t*(hi[1]-lo[1]))
		}
	}
	return 100
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
