package sarray

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

func TestBuildIsAValidPermutation(t *testing.T) {
	tokens := tok(1, 2, 3, 1, 2, 3, 1, 2, 3)
	sa := Build(tokens)
	require.Len(t, sa, len(tokens))

	seen := make(map[int]bool, len(sa))
	for _, v := range sa {
		assert.False(t, seen[v], "duplicate suffix-array entry %d", v)
		seen[v] = true
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, len(tokens))
	}
}

func TestBuildOrdersSuffixesLexicographically(t *testing.T) {
	tokens := tok(3, 1, 2, 1, 2)
	sa := Build(tokens)

	less := func(i, j int) bool {
		for k := 0; ; k++ {
			ai, aOK := i+k < len(tokens), i+k < len(tokens)
			_ = aOK
			bi := j+k < len(tokens)
			if !ai && !bi {
				return false
			}
			if !ai {
				return true
			}
			if !bi {
				return false
			}
			if tokens[i+k] != tokens[j+k] {
				return tokens[i+k] < tokens[j+k]
			}
		}
	}
	for i := 1; i < len(sa); i++ {
		assert.True(t, !less(sa[i], sa[i-1]), "suffix array not sorted at %d", i)
	}
}

func TestLCPArrayMatchesBruteForce(t *testing.T) {
	tokens := tok(1, 2, 3, 1, 2, 3, 1, 2, 3, 9)
	sa := Build(tokens)
	lcp := LCPArray(tokens, sa)

	bruteLCP := func(a, b int) int {
		n := 0
		for a+n < len(tokens) && b+n < len(tokens) && tokens[a+n] == tokens[b+n] {
			n++
		}
		return n
	}

	for i := 1; i < len(sa); i++ {
		want := bruteLCP(sa[i-1], sa[i])
		assert.Equal(t, want, lcp[i], "lcp mismatch at row %d", i)
	}
	assert.Equal(t, 0, lcp[0])
}

func TestIntervalsFindsRepeatedTriple(t *testing.T) {
	tokens := tok(1, 2, 3, 1, 2, 3, 1, 2, 3, 1, 2, 3, 1, 2, 3)
	sa := Build(tokens)
	lcp := LCPArray(tokens, sa)
	intervals := Intervals(sa, lcp, 2, 8)

	found := false
	for _, iv := range intervals {
		if iv.LCP == 3 && len(iv.Positions) == 5 {
			found = true
		}
	}
	assert.True(t, found, "expected an interval of length 3 with 5 positions, got %+v", intervals)
}

func TestIntervalsEmptyOnShortInput(t *testing.T) {
	tokens := tok(1, 2)
	sa := Build(tokens)
	lcp := LCPArray(tokens, sa)
	intervals := Intervals(sa, lcp, 4, 8)
	assert.Empty(t, intervals)
}

func TestIntervalsTruncatesToMaxLen(t *testing.T) {
	tokens := tok(1, 2, 3, 4, 5, 1, 2, 3, 4, 5)
	sa := Build(tokens)
	lcp := LCPArray(tokens, sa)
	intervals := Intervals(sa, lcp, 2, 3)
	for _, iv := range intervals {
		assert.LessOrEqual(t, iv.LCP, 3)
	}
}
