package selection

import "github.com/seiflotfy/metapair/internal/types"

// lexLess imposes ascending lexicographic order on two subsequences.
func lexLess(a, b []types.Token) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// patternCounts maps a pattern key to its total occurrence count across
// the whole occurrence set, used by the optimal selection's
// deterministic pre-sort (see optimal.go).
func patternCounts(occs []types.Occurrence) map[string]int {
	counts := make(map[string]int, len(occs))
	for _, o := range occs {
		counts[o.Key]++
	}
	return counts
}

// patternRank orders two occurrences that tie on end position (the
// optimal DP's primary sort key) per the spec's Open Question
// resolution: fewer total occurrences first, then longer pattern
// first, then lexicographically smaller subsequence.
func patternRank(a, b types.Occurrence, counts map[string]int) bool {
	ca, cb := counts[a.Key], counts[b.Key]
	if ca != cb {
		return ca < cb
	}
	if a.Len != b.Len {
		return a.Len > b.Len
	}
	return lexLess(a.Sub, b.Sub)
}
