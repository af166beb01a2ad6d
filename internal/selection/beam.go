package selection

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// beamState is one partial selection carried through the beam search.
type beamState struct {
	score    int
	lastEnd  int
	taken    []bool // aligned to the start-sorted occurrence order
	counts   map[string]int
}

func (s beamState) clone() beamState {
	taken := append([]bool(nil), s.taken...)
	counts := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}
	return beamState{score: s.score, lastEnd: s.lastEnd, taken: taken, counts: counts}
}

// selectBeam maintains up to p.BeamWidth partial selections. For each
// occurrence (processed in start order) every surviving state branches
// into skip and, when the occurrence does not overlap the state's last
// accepted range, take. Taking an occurrence scores its marginal
// saving: (L-1) minus the one-time dictionary overhead (2+delta),
// charged exactly once, on the transition from count CMin-1 to CMin for
// that pattern.
func selectBeam(occs []types.Occurrence, p Params) []bool {
	order := make([]int, len(occs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := occs[order[i]], occs[order[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Len != b.Len {
			return a.Len < b.Len
		}
		return lexLess(a.Sub, b.Sub)
	})
	sorted := make([]types.Occurrence, len(order))
	for i, idx := range order {
		sorted[i] = occs[idx]
	}

	width := p.BeamWidth
	if width <= 0 {
		width = 8
	}

	states := []beamState{{lastEnd: -1, taken: make([]bool, len(sorted)), counts: map[string]int{}}}

	for i, o := range sorted {
		var next []beamState
		for _, st := range states {
			// skip
			next = append(next, st)

			// take, if it fits
			if o.Start >= st.lastEnd {
				ns := st.clone()
				ns.taken[i] = true
				ns.lastEnd = o.End()
				prevCount := ns.counts[o.Key]
				ns.counts[o.Key] = prevCount + 1
				gain := o.Len - 1
				cmin := p.CMin(o.Len)
				if prevCount+1 == cmin {
					gain -= 2 + p.Delta
				}
				ns.score += gain
				next = append(next, ns)
			}
		}
		states = pruneBeam(next, width)
	}

	best := states[0]
	for _, st := range states[1:] {
		if st.score > best.score {
			best = st
		}
	}

	accepted := make([]bool, len(occs))
	for i, idx := range order {
		accepted[idx] = best.taken[i]
	}
	return accepted
}

// pruneBeam keeps the top-width states by score, breaking ties by
// preferring the state with fewer accepted occurrences (a cheaper,
// more conservative partial solution to keep expanding).
func pruneBeam(states []beamState, width int) []beamState {
	sort.Slice(states, func(i, j int) bool {
		if states[i].score != states[j].score {
			return states[i].score > states[j].score
		}
		return countTrue(states[i].taken) < countTrue(states[j].taken)
	})
	if len(states) > width {
		states = states[:width]
	}
	return states
}

func countTrue(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}
