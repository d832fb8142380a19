package filter

import "github.com/sahilm/fuzzy"

// BestMatch returns the index of the label that best matches pattern.
// Empty labels (graph list spacers) never match.
func BestMatch(pattern string, labels []string) (int, bool) {
	if pattern == "" {
		return 0, false
	}

	matches := fuzzy.Find(pattern, labels)
	for _, m := range matches {
		if labels[m.Index] != "" {
			return m.Index, true
		}
	}
	return 0, false
}

// Matches returns the indices of all labels matching pattern, best first
func Matches(pattern string, labels []string) []int {
	if pattern == "" {
		return nil
	}

	matches := fuzzy.Find(pattern, labels)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}
