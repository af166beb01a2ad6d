// Package wire serializes dictionary entries and a body into a single
// []Token stream and parses that stream back apart, following the
// layout-comment-then-code style of onpair/archive.go's "Wire format
// (version 2):" header, adapted to a token-granularity payload instead
// of a byte-granularity one.
package wire

import (
	"fmt"

	"github.com/seiflotfy/metapair/internal/errs"
	"github.com/seiflotfy/metapair/internal/types"
)

// Format describes the reserved token ids one compression operation
// uses to frame its dictionary and body. Reserved ids occupy a single
// contiguous range starting at Base so a caller only needs to avoid one
// interval, not several scattered ones.
//
// Layout (token stream):
//
//	[ StaticMarker ]? DictStart ( meta [ LenMarker length ] sub+ )* DictEnd body*
//
// DictStart and DictEnd frame the dictionary. Each entry is one meta
// token followed, when LengthMarkersEnabled, by LenMarker and a single
// token carrying the entry's subsequence length, followed by that many
// subsequence tokens. When length markers are disabled, entry framing
// instead relies on the invariant that no subsequence token is itself a
// meta-token while hierarchy is flat; Parse falls back to scanning
// until the next reserved id in that mode.
type Format struct {
	Base                 types.Token
	MetaPoolSize         int
	LengthMarkersEnabled bool
}

const reservedCount = 4 // StaticMarker, DictStart, DictEnd, LenMarker

// StaticMarker, DictStart, DictEnd, LenMarker, and the meta-token pool
// all live in [Base, Base+Span()).
func (f Format) StaticMarker() types.Token { return f.Base }
func (f Format) DictStart() types.Token    { return f.Base + 1 }
func (f Format) DictEnd() types.Token      { return f.Base + 2 }
func (f Format) LenMarker() types.Token    { return f.Base + 3 }
func (f Format) MetaBase() types.Token     { return f.Base + types.Token(reservedCount) }

// Span is the total width of the reserved id range.
func (f Format) Span() int { return reservedCount + f.MetaPoolSize }

func (f Format) isMeta(t types.Token) bool {
	return t >= f.MetaBase() && t < f.MetaBase()+types.Token(f.MetaPoolSize)
}

func (f Format) isReserved(t types.Token) bool {
	return t >= f.Base && t < f.Base+types.Token(f.Span())
}

// Serialize writes the static-dictionary marker (if staticApplied),
// then the dictionary frame, then body, as a single token stream.
// entries must already be in topological order (dependencies first);
// Serialize does not re-sort them.
func Serialize(f Format, entries []types.DictionaryEntry, body []types.Token, staticApplied bool) []types.Token {
	out := make([]types.Token, 0, len(body)+4+2*len(entries))
	if staticApplied {
		out = append(out, f.StaticMarker())
	}
	out = append(out, f.DictStart())
	for _, e := range entries {
		out = append(out, e.Meta)
		if f.LengthMarkersEnabled {
			out = append(out, f.LenMarker(), types.Token(len(e.Sub)))
		}
		out = append(out, e.Sub...)
	}
	out = append(out, f.DictEnd())
	out = append(out, body...)
	return out
}

// Parse splits a serialized stream back into dictionary entries, body,
// and whether the static-dictionary marker was present. Per property 8
// (idempotence of decompression on raw input), a stream with no
// DictStart at all is treated as a bare, unframed body and returned
// unchanged with no entries.
func Parse(f Format, serialized []types.Token) (entries []types.DictionaryEntry, body []types.Token, staticApplied bool, err error) {
	i := 0
	if i < len(serialized) && serialized[i] == f.StaticMarker() {
		staticApplied = true
		i++
	}

	if i >= len(serialized) || serialized[i] != f.DictStart() {
		if staticApplied {
			return nil, nil, false, fmt.Errorf("%w: static marker without dict start", errs.ErrMalformedCompressedStream)
		}
		return nil, serialized, false, nil
	}
	i++

	generation := 0
	for {
		if i >= len(serialized) {
			return nil, nil, false, fmt.Errorf("%w: missing DICT_END", errs.ErrMalformedCompressedStream)
		}
		if serialized[i] == f.DictEnd() {
			i++
			break
		}

		meta := serialized[i]
		if !f.isMeta(meta) {
			return nil, nil, false, fmt.Errorf("%w: expected meta-token, got %d", errs.ErrMalformedCompressedStream, meta)
		}
		i++

		var sub []types.Token
		if f.LengthMarkersEnabled {
			if i >= len(serialized) || serialized[i] != f.LenMarker() {
				return nil, nil, false, fmt.Errorf("%w: missing length marker for meta %d", errs.ErrMalformedCompressedStream, meta)
			}
			i++
			if i >= len(serialized) {
				return nil, nil, false, fmt.Errorf("%w: missing length value for meta %d", errs.ErrMalformedCompressedStream, meta)
			}
			length := int(serialized[i])
			i++
			if length < 0 || i+length > len(serialized) {
				return nil, nil, false, fmt.Errorf("%w: inconsistent length marker for meta %d", errs.ErrMalformedCompressedStream, meta)
			}
			sub = append(sub, serialized[i:i+length]...)
			i += length
		} else {
			start := i
			for i < len(serialized) && !f.isReserved(serialized[i]) {
				i++
			}
			if i >= len(serialized) {
				return nil, nil, false, fmt.Errorf("%w: missing DICT_END", errs.ErrMalformedCompressedStream)
			}
			sub = append(sub, serialized[start:i]...)
		}

		entries = append(entries, types.DictionaryEntry{Meta: meta, Sub: sub, Generation: generation})
	}

	body = append(body, serialized[i:]...)
	return entries, body, staticApplied, nil
}
