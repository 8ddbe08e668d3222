// Package fuzzy ranks names against a loosely typed query, for "did you
// mean" suggestions.
package fuzzy

import (
	"sort"
	"strings"
)

// Result is one ranked candidate.
type Result struct {
	Text  string
	Score float64
}

// Rank scores every candidate against query and returns those scoring at
// least minScore, best first. Ties keep candidate order. limit <= 0 means
// no limit.
func Rank(query string, candidates []string, minScore float64, limit int) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if score := Match(query, c); score >= minScore && score > 0 {
			results = append(results, Result{Text: c, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Match returns a score between 0 and 1 for how well pattern matches
// text, ignoring case. Exact, prefix and substring matches score 1, 0.9
// and 0.8; otherwise the pattern must appear as a subsequence and the
// score falls with the gaps between matched characters.
func Match(pattern, text string) float64 {
	if pattern == "" {
		return 1.0
	}
	p := []rune(strings.ToLower(pattern))
	t := []rune(strings.ToLower(text))

	switch lp, lt := string(p), string(t); {
	case lp == lt:
		return 1.0
	case strings.HasPrefix(lt, lp):
		return 0.9
	case strings.Contains(lt, lp):
		return 0.8
	}

	// Find the pattern characters in order.
	matches := make([]int, 0, len(p))
	for i, j := 0, 0; i < len(p) && j < len(t); j++ {
		if p[i] == t[j] {
			matches = append(matches, j)
			i++
		}
	}
	if len(matches) < len(p) {
		return 0.0
	}

	n := float64(len(t))
	matchRatio := float64(len(p)) / n
	gapPenalty := 0.0
	for i := 1; i < len(matches); i++ {
		if gap := matches[i] - matches[i-1] - 1; gap > 0 {
			gapPenalty += float64(gap) / n
		}
	}
	// Earlier matches are better.
	positionBonus := 0.1 * (1.0 - float64(matches[0])/n)

	// Scale down fuzzy matches compared to prefix/exact
	score := (matchRatio - gapPenalty + positionBonus) * 0.7
	return min(max(score, 0), 1)
}
