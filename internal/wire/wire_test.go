package wire

import (
	"testing"

	"github.com/seiflotfy/metapair/internal/errs"
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

func testFormat() Format {
	return Format{Base: 1000, MetaPoolSize: 16, LengthMarkersEnabled: true}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	f := testFormat()
	entries := []types.DictionaryEntry{
		{Meta: f.MetaBase(), Sub: tok(1, 2, 3), Generation: 0},
	}
	body := tok(int(f.MetaBase()), 9, int(f.MetaBase()))

	stream := Serialize(f, entries, body, false)
	gotEntries, gotBody, static, err := Parse(f, stream)
	require.NoError(t, err)
	assert.False(t, static)
	assert.Equal(t, entries, gotEntries)
	assert.Equal(t, body, gotBody)
}

func TestSerializeParseWithStaticMarker(t *testing.T) {
	f := testFormat()
	stream := Serialize(f, nil, tok(1, 2, 3), true)
	entries, body, static, err := Parse(f, stream)
	require.NoError(t, err)
	assert.True(t, static)
	assert.Empty(t, entries)
	assert.Equal(t, tok(1, 2, 3), body)
}

func TestParseNoDictStartIsPassthrough(t *testing.T) {
	f := testFormat()
	raw := tok(5, 6, 7)
	entries, body, static, err := Parse(f, raw)
	require.NoError(t, err)
	assert.Nil(t, entries)
	assert.False(t, static)
	assert.Equal(t, raw, body)
}

func TestParseWithoutLengthMarkers(t *testing.T) {
	f := Format{Base: 1000, MetaPoolSize: 16, LengthMarkersEnabled: false}
	entries := []types.DictionaryEntry{{Meta: f.MetaBase(), Sub: tok(1, 2, 3)}}
	body := tok(9, int(f.MetaBase()))

	stream := Serialize(f, entries, body, false)
	gotEntries, gotBody, _, err := Parse(f, stream)
	require.NoError(t, err)
	assert.Equal(t, entries, gotEntries)
	assert.Equal(t, body, gotBody)
}

func TestParseMissingDictEnd(t *testing.T) {
	f := testFormat()
	stream := []types.Token{f.DictStart(), f.MetaBase(), f.LenMarker(), 2, 1, 2}
	_, _, _, err := Parse(f, stream)
	assert.ErrorIs(t, err, errs.ErrMalformedCompressedStream)
}

func TestParseInconsistentLengthMarker(t *testing.T) {
	f := testFormat()
	stream := []types.Token{f.DictStart(), f.MetaBase(), f.LenMarker(), 99, 1, 2, f.DictEnd()}
	_, _, _, err := Parse(f, stream)
	assert.ErrorIs(t, err, errs.ErrMalformedCompressedStream)
}

func TestExpandSimpleEntry(t *testing.T) {
	f := testFormat()
	entries := []types.DictionaryEntry{{Meta: f.MetaBase(), Sub: tok(1, 2, 3)}}
	body := tok(int(f.MetaBase()), 9, int(f.MetaBase()))

	out, err := Expand(f, entries, body)
	require.NoError(t, err)
	assert.Equal(t, tok(1, 2, 3, 9, 1, 2, 3), out)
}

func TestExpandNestedEntries(t *testing.T) {
	f := testFormat()
	inner := f.MetaBase()
	outer := f.MetaBase() + 1
	entries := []types.DictionaryEntry{
		{Meta: inner, Sub: tok(1, 2)},
		{Meta: outer, Sub: []types.Token{inner, 3}},
	}
	body := []types.Token{outer}

	out, err := Expand(f, entries, body)
	require.NoError(t, err)
	assert.Equal(t, tok(1, 2, 3), out)
}

func TestExpandDetectsCycle(t *testing.T) {
	f := testFormat()
	a := f.MetaBase()
	b := f.MetaBase() + 1
	entries := []types.DictionaryEntry{
		{Meta: a, Sub: []types.Token{b}},
		{Meta: b, Sub: []types.Token{a}},
	}
	_, err := Expand(f, entries, []types.Token{a})
	assert.ErrorIs(t, err, errs.ErrMalformedCompressedStream)
}

func TestExpandHonorsEntriesOutsideTheReservedMetaRange(t *testing.T) {
	f := testFormat()
	// A meta id chosen by an external collaborator (e.g. a static
	// dictionary), deliberately outside [f.MetaBase(), f.MetaBase()+pool).
	externalMeta := types.Token(5)
	entries := []types.DictionaryEntry{{Meta: externalMeta, Sub: tok(1, 2, 3)}}

	out, err := Expand(f, entries, []types.Token{externalMeta, 9, externalMeta})
	require.NoError(t, err)
	assert.Equal(t, tok(1, 2, 3, 9, 1, 2, 3), out)
}

func TestExpandUndefinedMetaReference(t *testing.T) {
	f := testFormat()
	_, err := Expand(f, nil, []types.Token{f.MetaBase()})
	assert.ErrorIs(t, err, errs.ErrMalformedCompressedStream)
}

func TestExpandMemoizesRepeatedReferences(t *testing.T) {
	f := testFormat()
	entries := []types.DictionaryEntry{{Meta: f.MetaBase(), Sub: tok(1, 2, 3, 4, 5)}}
	body := make([]types.Token, 0, 200)
	for i := 0; i < 100; i++ {
		body = append(body, f.MetaBase())
	}
	out, err := Expand(f, entries, body)
	require.NoError(t, err)
	assert.Len(t, out, 500)
}
