package discovery

import (
	"github.com/seiflotfy/metapair/internal/sarray"
	"github.com/seiflotfy/metapair/internal/types"
)

// suffixArrayStrategy is the default discovery strategy: it builds a
// suffix array and LCP array over the input and turns each LCP interval
// into a candidate.
type suffixArrayStrategy struct{}

func (suffixArrayStrategy) Discover(tokens []types.Token, opts Options) []types.Candidate {
	sa := sarray.Build(tokens)
	lcp := sarray.LCPArray(tokens, sa)
	intervals := sarray.Intervals(sa, lcp, opts.MinLen, opts.MaxLen)

	out := make([]types.Candidate, 0, len(intervals))
	for _, iv := range intervals {
		l := iv.LCP
		if l > len(tokens) {
			continue
		}
		positions := nonOverlapSweep(iv.Positions, l)
		if len(positions) < types.CMin(l, opts.Delta) {
			continue
		}
		p0 := positions[0]
		sub := append([]types.Token(nil), tokens[p0:p0+l]...)
		out = append(out, types.Candidate{Sub: sub, Positions: positions})
	}
	return out
}
