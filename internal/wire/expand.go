package wire

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/seiflotfy/metapair/internal/errs"
	"github.com/seiflotfy/metapair/internal/types"
)

// Expand recursively substitutes every meta-token in body with its
// dictionary entry's token sequence, memoizing each meta-token's fully
// expanded sequence so a meta-token referenced many times in the body
// (or nested inside several other entries) is only ever expanded once.
// The cache is sized to len(entries), the exact number of distinct
// meta-tokens one decompress call can ever need to expand.
func Expand(f Format, entries []types.DictionaryEntry, body []types.Token) ([]types.Token, error) {
	byMeta := make(map[types.Token][]types.Token, len(entries))
	for _, e := range entries {
		byMeta[e.Meta] = e.Sub
	}

	size := len(entries)
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[types.Token, []types.Token](size)
	if err != nil {
		return nil, fmt.Errorf("wire: building expansion cache: %w", err)
	}

	visiting := make(map[types.Token]bool, len(entries))

	var expandToken func(t types.Token) ([]types.Token, error)
	expandToken = func(t types.Token) ([]types.Token, error) {
		sub, ok := byMeta[t]
		if !ok {
			// Anything inside the engine's own reserved meta-pool range
			// must resolve to a defined entry; anything outside it (an
			// ordinary input token, or a static-dictionary meta id chosen
			// by an external collaborator with no matching entry here)
			// passes through unchanged.
			if f.isMeta(t) {
				return nil, fmt.Errorf("%w: undefined meta-token reference %d", errs.ErrMalformedCompressedStream, t)
			}
			return []types.Token{t}, nil
		}
		if cached, ok := cache.Get(t); ok {
			return cached, nil
		}
		if visiting[t] {
			return nil, fmt.Errorf("%w: cyclic meta-token reference at %d", errs.ErrMalformedCompressedStream, t)
		}

		visiting[t] = true
		out := make([]types.Token, 0, len(sub))
		for _, inner := range sub {
			expanded, err := expandToken(inner)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
		visiting[t] = false

		cache.Add(t, out)
		return out, nil
	}

	result := make([]types.Token, 0, len(body))
	for _, t := range body {
		expanded, err := expandToken(t)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}
