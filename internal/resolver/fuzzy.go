package resolver

import (
	"strings"
	"unicode"

	"gamelength/internal/backends/hltb"
)

// bestMatch picks the entry whose name is closest to the target title by
// normalized edit-distance confidence. Returns nil for an empty entry list.
func bestMatch(target string, entries []hltb.Entry) *hltb.Entry {
	normalizedTarget := normalizeForFuzzy(target)

	var best *hltb.Entry
	bestConfidence := 0.0

	for i := range entries {
		e := &entries[i]
		normalizedName := normalizeForFuzzy(e.GameName)

		distance := levenshteinDistance(normalizedTarget, normalizedName)

		maxLen := len(normalizedTarget)
		if len(normalizedName) > maxLen {
			maxLen = len(normalizedName)
		}
		if maxLen == 0 {
			continue
		}

		confidence := 1.0 - float64(distance)/float64(maxLen)
		if best == nil || confidence > bestConfidence {
			best = e
			bestConfidence = confidence
		}
	}

	return best
}

// normalizeForFuzzy prepares a title for fuzzy comparison: lowercase,
// alphanumeric runes only.
func normalizeForFuzzy(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if a == b {
		return 0
	}

	lenA, lenB := len(a), len(b)
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
