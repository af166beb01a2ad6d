// Package discovery produces candidate patterns (a subsequence plus a
// non-overlapping set of occurrence positions) from a token sequence.
package discovery

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/types"
)

// Mode selects which discovery strategy Run dispatches to.
type Mode int

const (
	// SuffixArray is the default strategy: LCP intervals over a suffix
	// array of the input.
	SuffixArray Mode = iota
	// SlidingWindow groups identical fixed-length windows for each
	// length in [MinLen, MaxLen].
	SlidingWindow
	// BPE iteratively merges the best adjacent-pair into longer
	// candidates.
	BPE
)

// Scorer adjusts a candidate's priority before selection. The root
// package's PriorityProvider is adapted to this function type at the
// call site so this package never needs to import the root package.
type Scorer func(c types.Candidate, tokens []types.Token) int

// Options configures a discovery run. It is a plain struct (not the
// root Config) so this package has no dependency on the root package.
type Options struct {
	MinLen       int
	MaxLen       int
	Delta        int // dictionary overhead per pattern (1 with length markers, else 0)
	Mode         Mode
	BPEMaxMerges int // iteration cap for the BPE strategy; 0 uses a length-derived default
	Scorers      []Scorer
}

// Strategy produces raw candidates (before cross-strategy merge and
// the compressibility prefilter, both applied by Run).
type Strategy interface {
	Discover(tokens []types.Token, opts Options) []types.Candidate
}

func strategyFor(mode Mode) Strategy {
	switch mode {
	case SlidingWindow:
		return slidingWindowStrategy{}
	case BPE:
		return bpeStrategy{}
	default:
		return suffixArrayStrategy{}
	}
}

// Run discovers candidates using the configured strategy, unions them
// with any warmStart candidates from a previous result, merges
// duplicate subsequences, applies the compressibility prefilter, and
// finally applies any priority scorers.
func Run(tokens []types.Token, opts Options, warmStart []types.Candidate) []types.Candidate {
	if len(tokens) < opts.MinLen+1 {
		return nil
	}

	strategy := strategyFor(opts.Mode)
	cands := strategy.Discover(tokens, opts)
	if len(warmStart) > 0 {
		cands = append(cands, reseat(tokens, warmStart)...)
	}

	cands = MergeBySub(cands)
	cands = prefilter(cands, opts.Delta)

	for i := range cands {
		for _, score := range opts.Scorers {
			cands[i].Priority += score(cands[i], tokens)
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		return candidateLess(cands[i], cands[j])
	})
	return cands
}

// candidateLess imposes the deterministic total order shared by every
// stage: ascending start of first position, ascending length, ascending
// lexicographic subsequence.
func candidateLess(a, b types.Candidate) bool {
	pa, pb := firstPos(a), firstPos(b)
	if pa != pb {
		return pa < pb
	}
	if a.Len() != b.Len() {
		return a.Len() < b.Len()
	}
	return lexLess(a.Sub, b.Sub)
}

func firstPos(c types.Candidate) int {
	if len(c.Positions) == 0 {
		return -1
	}
	return c.Positions[0]
}

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

// nonOverlapSweep converts an ascending-sorted position list into the
// maximal non-overlapping subset via a left-to-right greedy sweep:
// accept p iff p >= lastAccepted + length.
func nonOverlapSweep(positions []int, length int) []int {
	if len(positions) == 0 {
		return nil
	}
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)

	out := make([]int, 0, len(sorted))
	last := -length // allow the first position unconditionally
	for _, p := range sorted {
		if p >= last+length {
			out = append(out, p)
			last = p
		}
	}
	return out
}

// prefilter drops candidates whose non-overlapping occurrence count
// fails the compressibility inequality for their length.
func prefilter(cands []types.Candidate, delta int) []types.Candidate {
	out := make([]types.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Len() < 2 {
			continue
		}
		if len(c.Positions) < types.CMin(c.Len(), delta) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MergeBySub unions the position sets of candidates sharing an
// identical subsequence and re-runs the non-overlap sweep over the
// union, since positions surfaced by different strategies (or from a
// warm-started previous result) may overlap each other.
func MergeBySub(cands []types.Candidate) []types.Candidate {
	if len(cands) == 0 {
		return nil
	}
	byKey := make(map[string]*types.Candidate, len(cands))
	order := make([]string, 0, len(cands))
	for _, c := range cands {
		key := types.Key(c.Sub)
		if existing, ok := byKey[key]; ok {
			existing.Positions = append(existing.Positions, c.Positions...)
			if c.Priority > existing.Priority {
				existing.Priority = c.Priority
			}
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
		c.Positions = nonOverlapSweep(c.Positions, c.Len())
		if len(c.Positions) >= 2 {
			out = append(out, *c)
		}
	}
	return out
}

// reseat validates warm-started candidates against the current token
// sequence, since a "previous result" may describe a sequence that has
// since changed shape (a prior hierarchical pass's body, for instance).
// Positions whose tokens no longer match the candidate's subsequence
// are dropped; the remainder is re-swept for non-overlap.
func reseat(tokens []types.Token, warm []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, 0, len(warm))
	for _, c := range warm {
		valid := make([]int, 0, len(c.Positions))
		for _, p := range c.Positions {
			if matchesAt(tokens, p, c.Sub) {
				valid = append(valid, p)
			}
		}
		if len(valid) < 2 {
			continue
		}
		cp := c
		cp.Positions = valid
		out = append(out, cp)
	}
	return out
}

func matchesAt(tokens []types.Token, pos int, sub []types.Token) bool {
	if pos < 0 || pos+len(sub) > len(tokens) {
		return false
	}
	for i, t := range sub {
		if tokens[pos+i] != t {
			return false
		}
	}
	return true
}
