package subsumption

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

func cmin(delta int) MinIndependent {
	return func(l int) int { return types.CMin(l, delta) }
}

func TestPruneKeepsPartiallyCoveredCandidateWhole(t *testing.T) {
	// (a,b,c,d) occurs at 0 and 7; (a,b,c) occurs at 0,4,7,11. Only its
	// occurrences at 0 and 7 lie inside the longer pattern, so the longer
	// pattern does not subsume it and it keeps all four positions.
	long := types.Candidate{Sub: tok(10, 11, 12, 13), Positions: []int{0, 7}}
	short := types.Candidate{Sub: tok(10, 11, 12), Positions: []int{0, 4, 7, 11}}

	out := Prune([]types.Candidate{long, short}, cmin(1))

	var gotShort *types.Candidate
	for i := range out {
		if out[i].Len() == 3 {
			gotShort = &out[i]
		}
	}
	require.NotNil(t, gotShort, "expected the partially covered shorter pattern to survive")
	assert.ElementsMatch(t, []int{0, 4, 7, 11}, gotShort.Positions)
}

func TestPruneDropsShortWhenNoIndependentValueRemains(t *testing.T) {
	long := types.Candidate{Sub: tok(10, 11, 12, 13), Positions: []int{0, 4}}
	short := types.Candidate{Sub: tok(10, 11, 12), Positions: []int{0, 4}}

	out := Prune([]types.Candidate{long, short}, cmin(1))
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Len())
}

func TestPruneKeepsUnrelatedCandidates(t *testing.T) {
	a := types.Candidate{Sub: tok(1, 2), Positions: []int{0, 10, 20, 30}}
	b := types.Candidate{Sub: tok(5, 6), Positions: []int{2, 12, 22, 32}}
	out := Prune([]types.Candidate{a, b}, cmin(1))
	assert.Len(t, out, 2)
}

func TestMergeTiesUnionsIdenticalSubsequences(t *testing.T) {
	a := types.Candidate{Sub: tok(1, 2), Positions: []int{0, 10}}
	b := types.Candidate{Sub: tok(1, 2), Positions: []int{10, 20}}
	out := mergeTies([]types.Candidate{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, []int{0, 10, 20}, out[0].Positions)
}
