package categorizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeValue folds a single value the way the pipeline does before
// classification: NFKC normalization followed by whitespace trimming.
// Anything matching pipeline results against original cell values must use
// the same fold.
func NormalizeValue(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Normalize collapses texts to the set of unique, trimmed, non-empty values,
// preserving first-occurrence order. Comparison is case-sensitive and by
// exact value after NFKC normalization and whitespace trimming. It is a pure
// function and always succeeds, possibly returning an empty slice.
func Normalize(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		t = NormalizeValue(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
