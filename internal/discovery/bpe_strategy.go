package discovery

import "github.com/seiflotfy/metapair/internal/types"

// bpeStrategy discovers candidates the way onpair's online dictionary
// trainer does (onpair.go's buildTokens), adapted from byte-pair
// merging to token-span merging: repeatedly merge the adjacent pair of
// spans whose non-overlapping occurrence count promises the largest net
// saving, treat the merged span as a new symbol, and repeat until no
// merge is net-beneficial or the iteration cap is hit.
type bpeStrategy struct{}

// span is a run of the original sequence represented by one symbol in
// the current working sequence.
type span struct {
	start int // offset into the original token sequence
	sub   []types.Token
}

func (bpeStrategy) Discover(tokens []types.Token, opts Options) []types.Candidate {
	n := len(tokens)
	if n < 2 {
		return nil
	}

	working := make([]span, n)
	for i, t := range tokens {
		working[i] = span{start: i, sub: []types.Token{t}}
	}

	mergeCap := opts.BPEMaxMerges
	if mergeCap <= 0 {
		mergeCap = opts.MaxLen * 4
	}

	var out []types.Candidate
	for iter := 0; iter < mergeCap; iter++ {
		merged, ok := bestMerge(working, opts)
		if !ok {
			break
		}
		working, ok = applyMerge(working, merged)
		if !ok {
			break
		}
		out = append(out, merged.candidate)
	}
	return out
}

type mergeCandidate struct {
	leftLen   int
	candidate types.Candidate
}

// bestMerge scans every adjacent pair of spans in the working sequence,
// groups identical merged-subsequence keys, computes their
// non-overlapping occurrence count, and returns the merge with the
// largest net saving that still clears the compressibility inequality.
func bestMerge(working []span, opts Options) (mergeCandidate, bool) {
	type group struct {
		sub       []types.Token
		positions []int
		leftLen   int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for i := 0; i+1 < len(working); i++ {
		l, r := working[i], working[i+1]
		totalLen := len(l.sub) + len(r.sub)
		if totalLen > opts.MaxLen {
			continue
		}
		merged := append(append([]types.Token(nil), l.sub...), r.sub...)
		key := types.Key(merged)
		g, ok := groups[key]
		if !ok {
			g = &group{sub: merged, leftLen: len(l.sub)}
			groups[key] = g
			order = append(order, key)
		}
		g.positions = append(g.positions, l.start)
	}

	bestSavings := 0
	var best mergeCandidate
	found := false
	for _, key := range order {
		g := groups[key]
		positions := nonOverlapSweep(g.positions, len(g.sub))
		l := len(g.sub)
		c := len(positions)
		if l < opts.MinLen || c < types.CMin(l, opts.Delta) {
			continue
		}
		sav := types.Savings(l, c, opts.Delta)
		if sav <= 0 {
			continue
		}
		if sav > bestSavings {
			bestSavings = sav
			best = mergeCandidate{
				leftLen:   g.leftLen,
				candidate: types.Candidate{Sub: g.sub, Positions: positions},
			}
			found = true
		}
	}
	return best, found
}

// applyMerge rewrites the working sequence, replacing each
// non-overlapping occurrence of the winning merge with a single
// combined span, left to right.
func applyMerge(working []span, merged mergeCandidate) ([]span, bool) {
	posSet := make(map[int]bool, len(merged.candidate.Positions))
	for _, p := range merged.candidate.Positions {
		posSet[p] = true
	}

	out := make([]span, 0, len(working))
	i := 0
	changed := false
	for i < len(working) {
		if i+1 < len(working) && posSet[working[i].start] {
			out = append(out, span{start: working[i].start, sub: merged.candidate.Sub})
			i += 2
			changed = true
			continue
		}
		out = append(out, working[i])
		i++
	}
	return out, changed
}
