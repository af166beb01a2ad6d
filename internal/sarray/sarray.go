// Package sarray builds a suffix array and LCP array over a token
// sequence and enumerates the LCP intervals used by pattern discovery.
//
// What:
//   - Build constructs the suffix array via prefix doubling, comparing
//     tokens as unsigned integers (alphabet-independent, unlike a
//     byte-oriented suffix array).
//   - LCPArray computes the longest-common-prefix array in linear time
//     from the suffix array and its inverse (Kasai's algorithm).
//   - Intervals enumerates maximal LCP intervals via a monotonic stack,
//     truncated to max_len and discarding intervals shorter than
//     min_len.
//
// Why:
//   - A repeated subsequence of length L that occurs C times corresponds
//     to an LCP interval of (truncated) length L spanning C suffix-array
//     rows; this is the mechanism pattern discovery uses to find every
//     repeat in one pass instead of re-scanning per length.
//
// Complexity:
//   - Build:     O(n log^2 n) (prefix doubling with a comparison sort
//     per doubling round; n log n with a counting-sort rank pass is
//     possible but not needed at prompt-scale token counts).
//   - LCPArray:  O(n) (Kasai's algorithm; the height pointer never
//     decreases by more than 1 each dragdown).
//   - Intervals: O(n) amortized (each suffix-array row is pushed onto
//     and popped off the stack at most once).
package sarray

import (
	"sort"
	"sync"

	"github.com/seiflotfy/metapair/internal/types"
)

// Interval is a maximal LCP interval: all suffixes SA[i]..SA[j] share a
// common prefix of length LCP (already truncated to max_len by the
// caller's request).
type Interval struct {
	LCP       int
	Positions []int // ascending start offsets into the original sequence
}

// scratch holds the reusable buffers needed by one Build call. Pooled
// the way WoozyMasta-lzo pools its sliding-window dictionaries, since
// suffix-array construction is this module's hottest allocation path.
type scratch struct {
	rank []int
	tmp  []int
	sa   []int
}

var scratchPool = sync.Pool{
	New: func() any { return &scratch{} },
}

func acquireScratch(n int) *scratch {
	s := scratchPool.Get().(*scratch)
	if cap(s.rank) < n {
		s.rank = make([]int, n)
		s.tmp = make([]int, n)
		s.sa = make([]int, n)
	}
	s.rank = s.rank[:n]
	s.tmp = s.tmp[:n]
	s.sa = s.sa[:n]
	return s
}

func releaseScratch(s *scratch) {
	scratchPool.Put(s)
}

// Build returns the suffix array of tokens: a permutation of
// [0, len(tokens)) such that tokens[sa[i]:] is lexicographically
// non-decreasing in i, comparing tokens by integer equality/ordering.
func Build(tokens []types.Token) []int {
	n := len(tokens)
	if n == 0 {
		return nil
	}
	s := acquireScratch(n)
	defer releaseScratch(s)

	sa, rank, tmp := s.sa, s.rank, s.tmp
	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(tokens[i])
	}

	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}

	for k := 1; k < n; k *= 2 {
		sort.Slice(sa, func(i, j int) bool {
			a, b := sa[i], sa[j]
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return rankAt(a, k) < rankAt(b, k)
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			a, b := sa[i-1], sa[i]
			if rank[a] != rank[b] || rankAt(a, k) != rankAt(b, k) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	out := make([]int, n)
	copy(out, sa)
	return out
}

// LCPArray computes, for each i>0, the length of the common prefix of
// the suffixes at SA[i-1] and SA[i]. LCPArray[0] is always 0.
func LCPArray(tokens []types.Token, sa []int) []int {
	n := len(sa)
	lcp := make([]int, n)
	if n == 0 {
		return lcp
	}
	rank := make([]int, n)
	for i, s := range sa {
		rank[s] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}
		j := sa[rank[i]-1]
		for i+h < n && j+h < n && tokens[i+h] == tokens[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// Intervals enumerates the maximal LCP intervals of sa/lcp via a
// monotonic stack keyed by LCP value, truncating each interval's length
// to maxLen and discarding intervals shorter than minLen. A sequence
// shorter than minLen+1 has no suffixes that can share a minLen-token
// prefix, so it yields no intervals.
func Intervals(sa, lcp []int, minLen, maxLen int) []Interval {
	n := len(sa)
	if n < minLen+1 {
		return nil
	}

	type frame struct {
		lcp   int
		start int
	}
	stack := []frame{{lcp: 0, start: 0}}
	var out []Interval

	emit := func(lcpVal, start, end int) {
		if lcpVal < minLen {
			return
		}
		l := lcpVal
		if l > maxLen {
			l = maxLen
		}
		positions := make([]int, 0, end-start)
		for k := start; k < end; k++ {
			positions = append(positions, sa[k])
		}
		sort.Ints(positions)
		out = append(out, Interval{LCP: l, Positions: positions})
	}

	for i := 1; i <= n; i++ {
		cur := 0
		if i < n {
			cur = lcp[i]
		}
		start := i - 1
		for len(stack) > 0 && stack[len(stack)-1].lcp > cur {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			start = top.start
			emit(top.lcp, start, i)
		}
		if len(stack) == 0 || stack[len(stack)-1].lcp < cur {
			stack = append(stack, frame{lcp: cur, start: start})
		}
	}

	return out
}
