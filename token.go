package sitesift

import (
	"strings"
	"unicode"
)

// Tokenize splits text into word tokens. A token is a maximal run of letters
// and digits, or a single punctuation character. This word-oriented split is
// used for chunk size budgeting and is independent of any embedding model's
// internal sub-word tokenizer.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

// CountTokens returns the number of word tokens in text.
func CountTokens(text string) int {
	return len(Tokenize(text))
}
