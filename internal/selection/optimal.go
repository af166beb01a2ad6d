package selection

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// selectOptimal solves weighted interval scheduling over the raw
// per-occurrence weight (L-1), ignoring the per-pattern dictionary
// overhead during the DP itself (the spec's DP is explicitly defined
// over per-occurrence weights only); the shared quota-refinement loop
// applied by Select afterward enforces that a pattern only keeps its
// accepted occurrences once enough of them clear CMin.
//
// Ties in the DP (dp[i-1] == w_i + dp[p(i)]) are resolved by sorting
// occurrences that share an end position, before the DP runs, per the
// spec's Open Question resolution: fewer total occurrences first,
// longer pattern first, lexicographically smaller subsequence first.
// The DP then always prefers the lower index on a tie (skip), which
// combined with that pre-sort produces a deterministic result without
// branching mid-DP.
func selectOptimal(occs []types.Occurrence, p Params) []bool {
	n := len(occs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	counts := patternCounts(occs)
	sort.Slice(order, func(i, j int) bool {
		a, b := occs[order[i]], occs[order[j]]
		if a.End() != b.End() {
			return a.End() < b.End()
		}
		return patternRank(a, b, counts)
	})

	ends := make([]int, n)
	weights := make([]int, n)
	for i, idx := range order {
		ends[i] = occs[idx].End()
		weights[i] = occs[idx].Len - 1
	}

	pred := make([]int, n)
	for i := 0; i < n; i++ {
		start := occs[order[i]].Start
		// largest j<i with ends[j] <= start
		lo, hi := 0, i-1
		best := -1
		for lo <= hi {
			mid := (lo + hi) / 2
			if ends[mid] <= start {
				best = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		pred[i] = best
	}

	dp := make([]int, n+1)
	take := make([]bool, n)
	for i := 0; i < n; i++ {
		predVal := 0
		if pred[i] >= 0 {
			predVal = dp[pred[i]+1]
		}
		withTake := weights[i] + predVal
		if withTake > dp[i] {
			dp[i+1] = withTake
			take[i] = true
		} else {
			dp[i+1] = dp[i]
			take[i] = false
		}
	}

	accepted := make([]bool, n)
	i := n - 1
	for i >= 0 {
		if take[i] {
			accepted[order[i]] = true
			if pred[i] >= 0 {
				i = pred[i]
			} else {
				i = -1
			}
		} else {
			i--
		}
	}
	return accepted
}
