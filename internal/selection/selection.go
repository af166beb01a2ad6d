// Package selection chooses a non-overlapping subset of candidate
// occurrences that maximizes net token savings, subject to a per-pattern
// quota: a pattern only contributes savings once at least CMin of its
// occurrences are selected together. Three variants are provided —
// greedy, optimal (weighted interval scheduling), and beam search —
// behind a single Select entry point.
package selection

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// Mode selects which selection algorithm Select dispatches to.
type Mode int

const (
	Greedy Mode = iota
	Optimal
	Beam
)

// Params configures one Select call.
type Params struct {
	Mode           Mode
	Delta          int
	BeamWidth      int
	RefineMaxIters int // bounded quota-refinement iterations; default 4
}

// CMin computes the minimum occurrence count for a pattern of length l
// to clear the compressibility inequality under Delta.
func (p Params) CMin(l int) int { return types.CMin(l, p.Delta) }

// Select explodes every candidate into its occurrences and returns the
// chosen non-overlapping subset.
func Select(cands []types.Candidate, p Params) []types.Occurrence {
	var occs []types.Occurrence
	for _, c := range cands {
		occs = append(occs, types.Explode(c)...)
	}
	if len(occs) == 0 {
		return nil
	}
	if p.RefineMaxIters <= 0 {
		p.RefineMaxIters = 4
	}

	var accepted []bool
	switch p.Mode {
	case Optimal:
		accepted = selectOptimal(occs, p)
	case Beam:
		accepted = selectBeam(occs, p)
	default:
		accepted = selectGreedy(occs, p)
	}

	accepted = refine(occs, accepted, p)

	out := make([]types.Occurrence, 0, len(occs))
	for i, ok := range accepted {
		if ok {
			out = append(out, occs[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// density is the per-occurrence savings-density heuristic used as the
// secondary ordering key of the greedy sweep (and of refine's
// greedyFill): (L-1)/L plus a small priority term.
func density(o types.Occurrence) float64 {
	return float64(o.Len-1)/float64(o.Len) + 0.1*float64(o.Priority)
}

// overlaps reports whether [aStart, aStart+aLen) and [bStart, bStart+bLen)
// intersect.
func overlaps(aStart, aLen, bStart, bLen int) bool {
	return aStart < bStart+bLen && bStart < aStart+aLen
}
