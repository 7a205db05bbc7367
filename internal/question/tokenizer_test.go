package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		candidates []string
		skipped    int
	}{
		{
			name:       "empty",
			content:    "  \n\n \t\n",
			candidates: nil,
		},
		{
			name:       "crlf and whitespace-only separators",
			content:    "1. a\r\nA. x\r\n \t \r\n\r\n2. b\r\nA. y\r\n",
			candidates: []string{"1. a\nA. x", "2. b\nA. y"},
		},
		{
			name:       "single blank line separates",
			content:    "1. a\n\n2. b",
			candidates: []string{"1. a", "2. b"},
		},
		{
			name:       "non-breaking space line separates",
			content:    "1. a\nA. x\n\u00a0\n2. b\nA. y",
			candidates: []string{"1. a\nA. x", "2. b\nA. y"},
		},
		{
			name:       "mixed unicode whitespace run separates",
			content:    "1. a\n \u00a0\u2003\n\t\n2. b",
			candidates: []string{"1. a", "2. b"},
		},
		{
			name:       "leading header chunks are skipped",
			content:    "JAMB Physics Day 3\nCompiled by the team\n\nInstructions: answer all\n\n1. a\n\n2. b",
			candidates: []string{"1. a", "2. b"},
			skipped:    2,
		},
		{
			name:       "non-question chunk after the first question is a candidate",
			content:    "1. a\n\nstray note\n\n2. b",
			candidates: []string{"1. a", "stray note", "2. b"},
		},
		{
			name:       "byte order mark",
			content:    "\ufeff1. a\n\n2. b",
			candidates: []string{"1. a", "2. b"},
		},
		{
			name:       "header only",
			content:    "Title line",
			candidates: nil,
			skipped:    1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.content)
			require.Equal(t, tc.candidates, got.Candidates)
			require.Equal(t, tc.skipped, got.Skipped)
		})
	}
}
