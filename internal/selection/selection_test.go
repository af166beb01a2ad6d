package selection

import (
	"testing"

	"github.com/seiflotfy/metapair/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(vals ...int) []types.Token {
	out := make([]types.Token, len(vals))
	for i, v := range vals {
		out[i] = types.Token(v)
	}
	return out
}

func assertNonOverlapping(t *testing.T, occs []types.Occurrence) {
	t.Helper()
	for i := 0; i < len(occs); i++ {
		for j := i + 1; j < len(occs); j++ {
			assert.False(t, overlaps(occs[i].Start, occs[i].Len, occs[j].Start, occs[j].Len),
				"occurrences %+v and %+v overlap", occs[i], occs[j])
		}
	}
}

func TestSelectGreedyBasicRepetition(t *testing.T) {
	c := types.Candidate{Sub: tok(1, 2, 3), Positions: []int{0, 3, 6, 9, 12}}
	out := Select([]types.Candidate{c}, Params{Mode: Greedy, Delta: 1})
	require.Len(t, out, 5)
	assertNonOverlapping(t, out)
}

func TestSelectOptimalPrefersLongerPatternS4(t *testing.T) {
	// [a,b,c,d, a,b,c, a,b,c,d, a,b,c] with a=1,b=2,c=3,d=4
	// length-4 pattern (a,b,c,d) at positions 0,7; length-3 (a,b,c) at 0,4,7,11
	abcd := types.Candidate{Sub: tok(1, 2, 3, 4), Positions: []int{0, 7}}
	abc := types.Candidate{Sub: tok(1, 2, 3), Positions: []int{0, 4, 7, 11}}

	out := Select([]types.Candidate{abcd, abc}, Params{Mode: Optimal, Delta: 1})

	byStart := map[int]types.Occurrence{}
	for _, o := range out {
		byStart[o.Start] = o
	}
	// The optimal DP should prefer (a,b,c,d) at 0 and 7, leaving (a,b,c)
	// to take the remaining non-overlapping slots at 4 and 11.
	if o, ok := byStart[0]; ok {
		assert.Equal(t, 4, o.Len)
	}
	assertNonOverlapping(t, out)
}

func TestSelectBeamRespectsQuota(t *testing.T) {
	c := types.Candidate{Sub: tok(1, 2, 3), Positions: []int{0, 3, 6, 9, 12}}
	out := Select([]types.Candidate{c}, Params{Mode: Beam, Delta: 1, BeamWidth: 4})
	assertNonOverlapping(t, out)
}

func TestSelectDropsPatternBelowQuota(t *testing.T) {
	// length 2 with only 2 occurrences: CMin(2,1) = ceil((2+2+1)/1) = 5
	c := types.Candidate{Sub: tok(1, 2), Positions: []int{0, 10}}
	out := Select([]types.Candidate{c}, Params{Mode: Greedy, Delta: 1})
	assert.Empty(t, out)
}

func TestSelectEmptyCandidatesYieldsEmptySelection(t *testing.T) {
	assert.Empty(t, Select(nil, Params{Mode: Greedy}))
}

func TestSelectResolvesOverlapBetweenDifferentPatterns(t *testing.T) {
	// Pattern A at [0,3) x5, pattern B at [1,4) x5: mutually overlapping
	// occurrences of *different* patterns must be resolved by selection.
	a := types.Candidate{Sub: tok(1, 2, 3), Positions: []int{0, 10, 20, 30, 40}}
	b := types.Candidate{Sub: tok(2, 3, 9), Positions: []int{1, 11, 21, 31, 41}}
	for _, mode := range []Mode{Greedy, Optimal, Beam} {
		out := Select([]types.Candidate{a, b}, Params{Mode: mode, Delta: 1, BeamWidth: 8})
		assertNonOverlapping(t, out)
	}
}

func TestSelectDeterministic(t *testing.T) {
	c := types.Candidate{Sub: tok(1, 2, 3), Positions: []int{0, 3, 6, 9, 12}}
	a := Select([]types.Candidate{c}, Params{Mode: Optimal, Delta: 1})
	b := Select([]types.Candidate{c}, Params{Mode: Optimal, Delta: 1})
	assert.Equal(t, a, b)
}
