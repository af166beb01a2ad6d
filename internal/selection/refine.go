package selection

import "github.com/seiflotfy/metapair/internal/types"

// refine runs the bounded quota-refinement loop shared by every
// selection variant: identify patterns that failed to reach CMin among
// accepted occurrences, drop all of their accepted occurrences, then
// greedily re-accept other occurrences into the freed ranges.
// Terminates early when every accepted pattern is compressible or when
// an iteration makes no further progress; returns the best-by-savings
// mask seen across iterations (the spec's resolution for the "quota
// refinement convergence" Open Question: hard cap at four iterations,
// keep the best seen).
func refine(occs []types.Occurrence, accepted []bool, p Params) []bool {
	lenOf := make(map[string]int, len(occs))
	for _, o := range occs {
		lenOf[o.Key] = o.Len
	}

	best := append([]bool(nil), accepted...)
	bestSavings := savingsOf(occs, accepted, lenOf, p.Delta)
	current := accepted

	for iter := 0; iter < p.RefineMaxIters; iter++ {
		counts := countByKey(occs, current)
		failing := make(map[string]bool)
		anyFailing := false
		for key, c := range counts {
			if c < types.CMin(lenOf[key], p.Delta) {
				failing[key] = true
				anyFailing = true
			}
		}
		if !anyFailing {
			break
		}

		next := append([]bool(nil), current...)
		for i, ok := range next {
			if ok && failing[occs[i].Key] {
				next[i] = false
			}
		}
		next = greedyFill(occs, next, p.Delta)

		if equalMasks(next, current) {
			break
		}

		sav := savingsOf(occs, next, lenOf, p.Delta)
		if sav > bestSavings {
			bestSavings = sav
			best = append([]bool(nil), next...)
		}
		current = next
	}
	return best
}

func countByKey(occs []types.Occurrence, mask []bool) map[string]int {
	counts := make(map[string]int)
	for i, ok := range mask {
		if ok {
			counts[occs[i].Key]++
		}
	}
	return counts
}

// savingsOf sums (L-1)(C-1)-(2+delta) over patterns whose accepted
// occurrence count clears CMin; patterns that don't clear it contribute
// nothing (their occurrences are dead weight until refine drops them).
func savingsOf(occs []types.Occurrence, mask []bool, lenOf map[string]int, delta int) int {
	counts := countByKey(occs, mask)
	total := 0
	for key, c := range counts {
		l := lenOf[key]
		if c >= types.CMin(l, delta) {
			total += types.Savings(l, c, delta)
		}
	}
	return total
}

// greedyFill accepts additional occurrences, in the same
// savings-then-density order selectGreedy uses, into whatever ranges
// are not already covered by mask.
func greedyFill(occs []types.Occurrence, mask []bool, delta int) []bool {
	order := sortedIndices(occs, delta)
	var ranges []types.Occurrence
	for i, ok := range mask {
		if ok {
			ranges = append(ranges, occs[i])
		}
	}
	out := append([]bool(nil), mask...)
	for _, idx := range order {
		if out[idx] {
			continue
		}
		o := occs[idx]
		free := true
		for _, r := range ranges {
			if overlaps(o.Start, o.Len, r.Start, r.Len) {
				free = false
				break
			}
		}
		if free {
			out[idx] = true
			ranges = append(ranges, o)
		}
	}
	return out
}

func equalMasks(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
