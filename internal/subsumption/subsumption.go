// Package subsumption prunes candidates that are fully covered by
// longer candidates, unless enough independent positions remain to
// still clear the compressibility inequality on their own.
package subsumption

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// MinIndependent computes the minimum number of independent positions
// a subsumed candidate needs to be retained, for a pattern of length l.
type MinIndependent func(l int) int

// Prune removes candidates fully covered by longer candidates unless,
// after removing positions covered by every subsumer, the remaining
// independent positions still satisfy minIndependent(len(sub)).
//
// a subsumes b iff b.Sub is a contiguous subsequence of a.Sub and every
// position of b lies inside some position of a, i.e.
// exists pa in a.Positions: pa <= pb <= pa + len(a.Sub) - len(b.Sub)
// and a.Sub[pb-pa : pb-pa+len(b.Sub)] == b.Sub.
func Prune(cands []types.Candidate, minIndependent MinIndependent) []types.Candidate {
	cands = mergeTies(cands)
	n := len(cands)
	if n == 0 {
		return nil
	}

	// subsumers[i] lists indices of candidates that subsume cands[i].
	subsumers := make([][]int, n)
	for i, b := range cands {
		for j, a := range cands {
			if i == j || a.Len() <= b.Len() {
				continue
			}
			if subsumesAll(a, b) {
				subsumers[i] = append(subsumers[i], j)
			}
		}
	}

	out := make([]types.Candidate, 0, n)
	for i, c := range cands {
		if len(subsumers[i]) == 0 {
			out = append(out, c)
			continue
		}
		independent := independentPositions(c, cands, subsumers[i])
		if len(independent) >= minIndependent(c.Len()) {
			cp := c
			cp.Positions = independent
			out = append(out, cp)
		}
	}
	return out
}

// mergeTies unions candidates that share an identical subsequence
// before graph construction, since subsumption is only meaningful
// between distinct patterns.
func mergeTies(cands []types.Candidate) []types.Candidate {
	byKey := make(map[string]*types.Candidate, len(cands))
	order := make([]string, 0, len(cands))
	for _, c := range cands {
		key := types.Key(c.Sub)
		if existing, ok := byKey[key]; ok {
			existing.Positions = append(existing.Positions, c.Positions...)
			continue
		}
		cp := c
		cp.Positions = append([]int(nil), c.Positions...)
		byKey[key] = &cp
		order = append(order, key)
	}
	out := make([]types.Candidate, 0, len(order))
	for _, key := range order {
		c := byKey[key]
		sort.Ints(c.Positions)
		c.Positions = dedupInts(c.Positions)
		out = append(out, *c)
	}
	return out
}

func dedupInts(s []int) []int {
	out := s[:0]
	var last int
	for i, v := range s {
		if i == 0 || v != last {
			out = append(out, v)
		}
		last = v
	}
	return out
}

// subsumesAll reports whether a subsumes b: b.Sub is a contiguous
// subsequence of a.Sub, and every position of b is covered by some
// position of a at a consistent offset.
func subsumesAll(a, b types.Candidate) bool {
	offset, ok := findOffset(a.Sub, b.Sub)
	if !ok {
		return false
	}
	for _, pb := range b.Positions {
		if !coveredAt(a, pb, offset) {
			return false
		}
	}
	return true
}

// findOffset returns the offset at which needle occurs as a contiguous
// run inside haystack, if any.
func findOffset(haystack, needle []types.Token) (int, bool) {
	if len(needle) > len(haystack) {
		return 0, false
	}
	for off := 0; off+len(needle) <= len(haystack); off++ {
		match := true
		for k, t := range needle {
			if haystack[off+k] != t {
				match = false
				break
			}
		}
		if match {
			return off, true
		}
	}
	return 0, false
}

func coveredAt(a types.Candidate, pb, offset int) bool {
	for _, pa := range a.Positions {
		if pb == pa+offset {
			return true
		}
	}
	return false
}

// independentPositions returns b's positions that are not covered by
// ALL of its subsumers (a position only needs to escape one subsumer's
// coverage to count as independent evidence for b's own value, but the
// spec requires removing positions covered by every subsumer — i.e. a
// position counts as dependent only once every subsumer accounts for
// it at a consistent offset).
func independentPositions(b types.Candidate, cands []types.Candidate, subsumerIdx []int) []int {
	var out []int
	for _, pb := range b.Positions {
		coveredByAll := true
		for _, idx := range subsumerIdx {
			a := cands[idx]
			offset, ok := findOffset(a.Sub, b.Sub)
			if !ok || !coveredAt(a, pb, offset) {
				coveredByAll = false
				break
			}
		}
		if !coveredByAll {
			out = append(out, pb)
		}
	}
	return out
}
