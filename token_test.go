package sitesift_test

import (
	"testing"

	"github.com/sitesift/sitesift"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words",
			text: "artificial intelligence enables automation",
			want: []string{"artificial", "intelligence", "enables", "automation"},
		},
		{
			name: "punctuation splits into separate tokens",
			text: "Hello, world!",
			want: []string{"Hello", ",", "world", "!"},
		},
		{
			name: "apostrophe splits",
			text: "don't",
			want: []string{"don", "'", "t"},
		},
		{
			name: "collapses whitespace runs",
			text: "a  \t b\n\nc",
			want: []string{"a", "b", "c"},
		},
		{
			name: "digits are word tokens",
			text: "version 2 released",
			want: []string{"version", "2", "released"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sitesift.Tokenize(tt.text))
		})
	}
}

func TestCountTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, sitesift.CountTokens("Hello, world!"))
	assert.Zero(t, sitesift.CountTokens(""))
}
