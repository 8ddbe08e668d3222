package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    float64
	}{
		{"empty pattern", "", "Terminal", 1.0},
		{"exact ignoring case", "terminal", "Terminal", 1.0},
		{"prefix", "term", "Terminal", 0.9},
		{"substring", "minal", "Terminal", 0.8},
		{"not a subsequence", "xyz", "Terminal", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.text))
		})
	}
}

func TestMatchSubsequence(t *testing.T) {
	typo := Match("Termnal", "Terminal")
	assert.Greater(t, typo, 0.0)
	assert.Less(t, typo, 0.8)

	// Shorter candidates score higher.
	assert.Greater(t, typo, Match("Termnal", "Terminal Emulator"))
}

func TestMatchRunes(t *testing.T) {
	assert.Equal(t, 0.9, Match("écr", "Écran"))
}

func TestRank(t *testing.T) {
	names := []string{"Lock Screen", "Terminal", "Screenshot", "Screen Recorder"}

	got := Rank("screen", names, 0.5, 0)
	var texts []string
	for _, r := range got {
		texts = append(texts, r.Text)
	}
	assert.Equal(t, []string{"Screenshot", "Screen Recorder", "Lock Screen"}, texts)

	assert.Len(t, Rank("screen", names, 0.5, 1), 1)
	assert.Empty(t, Rank("qqq", names, 0.1, 0))
}
