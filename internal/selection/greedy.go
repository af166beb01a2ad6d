package selection

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// selectGreedy sorts occurrences primarily by their pattern's total net
// savings (types.Savings over the pattern's full occurrence count, not
// just the occurrences that happen to survive overlap resolution),
// descending, then by per-occurrence savings density within a tie, then
// by the shared deterministic tie-break (ascending start, ascending
// length, ascending lexicographic subsequence), and walks the list
// once, accepting an occurrence iff its range is disjoint from every
// previously accepted range.
//
// Ranking by raw per-occurrence density (L-1)/L alone lets a longer
// pattern with only just-enough occurrences to clear CMin crowd out a
// shorter pattern with many more occurrences and far greater total
// payoff, even though the shorter pattern alone would have cleared the
// engine's non-expansion guard and the longer one does not. Ranking by
// total pattern savings first avoids that trap.
func selectGreedy(occs []types.Occurrence, p Params) []bool {
	order := sortedIndices(occs, p.Delta)

	accepted := make([]bool, len(occs))
	var acceptedRanges []types.Occurrence
	for _, idx := range order {
		o := occs[idx]
		free := true
		for _, r := range acceptedRanges {
			if overlaps(o.Start, o.Len, r.Start, r.Len) {
				free = false
				break
			}
		}
		if free {
			accepted[idx] = true
			acceptedRanges = append(acceptedRanges, o)
		}
	}
	return accepted
}

// patternSavings maps each pattern key present in occs to the net token
// savings its full occurrence count would realize (types.Savings), or a
// large negative sentinel when that occurrence count can never clear
// the pattern's compressibility quota (types.CMin) — such occurrences
// sort last so the sweep never wastes an acceptance slot on them.
func patternSavings(occs []types.Occurrence, delta int) map[string]int {
	counts := patternCounts(occs)
	lenOf := make(map[string]int, len(counts))
	for _, o := range occs {
		lenOf[o.Key] = o.Len
	}
	out := make(map[string]int, len(counts))
	for key, c := range counts {
		l := lenOf[key]
		if c < types.CMin(l, delta) {
			out[key] = -(1 << 30)
			continue
		}
		out[key] = types.Savings(l, c, delta)
	}
	return out
}

// sortedIndices returns indices into occs ordered by descending total
// pattern savings, then descending per-occurrence density, then the
// shared deterministic tie-break.
func sortedIndices(occs []types.Occurrence, delta int) []int {
	savings := patternSavings(occs, delta)

	order := make([]int, len(occs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := occs[order[i]], occs[order[j]]
		sa, sb := savings[a.Key], savings[b.Key]
		if sa != sb {
			return sa > sb
		}
		da, db := density(a), density(b)
		if da != db {
			return da > db
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Len != b.Len {
			return a.Len < b.Len
		}
		return lexLess(a.Sub, b.Sub)
	})
	return order
}
