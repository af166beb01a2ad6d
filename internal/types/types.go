// Package types holds the value types shared by every stage of the
// compression pipeline (discovery, subsumption, selection, dictionary
// construction, and wire serialization). It sits below the root package
// so that internal/* stage packages can exchange these values without
// importing the root package.
package types

import "strings"

// Token is an opaque identifier from an external tokenizer, or an
// engine-reserved id (dictionary delimiter, length marker, or
// meta-token). Tokens are compared by equality only.
type Token uint32

// Candidate is a subsequence together with the non-overlapping set of
// start offsets at which it occurs in the current working sequence.
//
// Invariants: Len() >= 2, len(Positions) >= 2, and Positions is
// strictly ascending with Positions[i+1] >= Positions[i] + Len().
type Candidate struct {
	Sub       []Token
	Positions []int
	Priority  int
}

// Len returns the length of the candidate's subsequence.
func (c Candidate) Len() int { return len(c.Sub) }

// Key returns a value suitable for grouping candidates or occurrences by
// identical subsequence content. Two subsequences compare equal under
// Key iff they have the same tokens in the same order.
func Key(sub []Token) string {
	var b strings.Builder
	b.Grow(len(sub) * 5)
	for _, t := range sub {
		// A fixed-width encoding: each 32-bit token is written as four
		// little-endian bytes followed by '|', so every token occupies
		// exactly five bytes and no token's bytes can be confused with a
		// boundary between tokens.
		b.WriteByte(byte(t))
		b.WriteByte(byte(t >> 8))
		b.WriteByte(byte(t >> 16))
		b.WriteByte(byte(t >> 24))
		b.WriteByte('|')
	}
	return b.String()
}

// Occurrence is a concrete placement of a candidate at one position.
type Occurrence struct {
	Start    int
	Len      int
	Sub      []Token
	Priority int
	Key      string
}

// End returns the exclusive end offset of the occurrence.
func (o Occurrence) End() int { return o.Start + o.Len }

// Explode expands a candidate into one Occurrence per position.
func Explode(c Candidate) []Occurrence {
	key := Key(c.Sub)
	out := make([]Occurrence, len(c.Positions))
	for i, p := range c.Positions {
		out[i] = Occurrence{Start: p, Len: c.Len(), Sub: c.Sub, Priority: c.Priority, Key: key}
	}
	return out
}

// DictionaryEntry is one row of a dictionary: a meta-token and the
// subsequence it denotes. Generation records which hierarchical pass
// introduced the entry; an entry may only reference meta-tokens from a
// strictly lower generation, which precludes reference cycles by
// construction during compression (see dictionary.TopoSort for the
// defensive check applied to untrusted, parsed input).
type DictionaryEntry struct {
	Meta       Token
	Sub        []Token
	Generation int
}

// Metrics carries optional per-stage timing and size information for a
// CompressionResult.
type Metrics struct {
	Passes           int
	StageNanos       map[string]int64
	OriginalLength   int
	CompressedLength int
}

// CompressionResult is the immutable output of a compression operation.
type CompressionResult struct {
	Original         []Token
	Body             []Token
	Serialized       []Token
	Dictionary       []DictionaryEntry
	DictionaryIndex  map[Token][]Token
	OriginalLength   int
	CompressedLength int
	Metrics          *Metrics
}

// CMin returns the minimum occurrence count a length-L pattern needs to
// satisfy the compressibility inequality L*C > 1+L+C+delta, i.e. the
// smallest integer C with C >= ceil((2+L+delta)/(L-1)).
func CMin(l, delta int) int {
	if l < 2 {
		return 1 << 30 // unsatisfiable; callers must reject L < 2 earlier
	}
	num := 2 + l + delta
	den := l - 1
	c := num / den
	if num%den != 0 {
		c++
	}
	if c < 2 {
		c = 2
	}
	return c
}

// Compressible reports whether a pattern of length L with C occurrences
// satisfies the compressibility inequality for the given dictionary
// overhead delta (1 when length markers are enabled, else 0).
func Compressible(l, c, delta int) bool {
	return l*c > 1+l+c+delta
}

// Savings returns the net token savings of selecting a pattern of
// length L with C occurrences, for overhead delta.
func Savings(l, c, delta int) int {
	return (l-1)*(c-1) - (2 + delta)
}
