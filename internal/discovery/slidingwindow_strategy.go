package discovery

import "github.com/seiflotfy/metapair/internal/types"

// slidingWindowStrategy groups identical fixed-length windows, for each
// length in [MinLen, MaxLen], by their content.
type slidingWindowStrategy struct{}

func (slidingWindowStrategy) Discover(tokens []types.Token, opts Options) []types.Candidate {
	var out []types.Candidate
	n := len(tokens)

	for l := opts.MinLen; l <= opts.MaxLen; l++ {
		if l > n {
			break
		}
		groups := make(map[string][]int, n-l+1)
		order := make([]string, 0, n-l+1)
		for p := 0; p+l <= n; p++ {
			key := types.Key(tokens[p : p+l])
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], p)
		}

		for _, key := range order {
			positions := nonOverlapSweep(groups[key], l)
			if len(positions) < types.CMin(l, opts.Delta) {
				continue
			}
			p0 := positions[0]
			sub := append([]types.Token(nil), tokens[p0:p0+l]...)
			out = append(out, types.Candidate{Sub: sub, Positions: positions})
		}
	}
	return out
}
