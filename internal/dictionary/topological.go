package dictionary

import (
	"github.com/seiflotfy/metapair/internal/errs"
	"github.com/seiflotfy/metapair/internal/types"
)

// vertex colors for the DFS below, the same three-state scheme
// (White/Gray/Black) lvlath's dfs.TopologicalSort uses to detect a back
// edge mid-traversal rather than after the fact.
const (
	white = 0
	gray  = 1
	black = 2
)

// topoSorter walks the dependency graph implied by a set of dictionary
// entries: entry e depends on entry f iff f.Meta appears in e.Sub.
type topoSorter struct {
	byMeta map[types.Token]types.DictionaryEntry
	state  map[types.Token]int
	order  []types.Token
}

// TopoSort returns entries ordered so that every entry appears after all
// entries its Sub references, or ErrMalformedCompressedStream if the
// entries contain a cycle. Build-time callers can rely on generation
// numbers alone to avoid cycles by construction; TopoSort exists as the
// defensive check run when entries arrive over the wire and generation
// discipline cannot be assumed.
func TopoSort(entries []types.DictionaryEntry) ([]types.DictionaryEntry, error) {
	s := &topoSorter{
		byMeta: make(map[types.Token]types.DictionaryEntry, len(entries)),
		state:  make(map[types.Token]int, len(entries)),
		order:  make([]types.Token, 0, len(entries)),
	}
	for _, e := range entries {
		s.byMeta[e.Meta] = e
	}
	for _, e := range entries {
		if s.state[e.Meta] == white {
			if err := s.visit(e.Meta); err != nil {
				return nil, err
			}
		}
	}

	out := make([]types.DictionaryEntry, 0, len(entries))
	for _, m := range s.order {
		out = append(out, s.byMeta[m])
	}
	return out, nil
}

func (s *topoSorter) visit(meta types.Token) error {
	switch s.state[meta] {
	case gray:
		return errs.ErrMalformedCompressedStream
	case black:
		return nil
	}
	s.state[meta] = gray

	entry, ok := s.byMeta[meta]
	if ok {
		for _, tok := range entry.Sub {
			if _, isMeta := s.byMeta[tok]; !isMeta {
				continue
			}
			if err := s.visit(tok); err != nil {
				return err
			}
		}
	}

	s.state[meta] = black
	s.order = append(s.order, meta)
	return nil
}
