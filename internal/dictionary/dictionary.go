// Package dictionary turns a set of selected, non-overlapping occurrences
// into meta-token dictionary entries and the substituted token body,
// mirroring the way onpair's trainDictionary phase folds frequent token
// pairs into fresh dictionary ids (see compressor/dictionary.go), but
// operating on pre-selected occurrences rather than discovering pairs
// itself.
package dictionary

import (
	"sort"

	"github.com/seiflotfy/metapair/internal/errs"
	"github.com/seiflotfy/metapair/internal/types"
)

// MetaPool allocates meta-tokens sequentially within one compression
// operation, the same nextTokenID-counter idiom onpair uses in
// trainDictionary, bounded instead by an explicit pool size so
// exhaustion is reported rather than silently truncating the dictionary.
type MetaPool struct {
	base, size, next int
}

// NewMetaPool returns a pool handing out tokens base, base+1, ... up to
// size tokens.
func NewMetaPool(base, size int) *MetaPool {
	return &MetaPool{base: base, size: size}
}

// Alloc returns the next meta-token, or ErrCapacityExceeded once size
// tokens have been handed out.
func (p *MetaPool) Alloc() (types.Token, error) {
	if p.next >= p.size {
		return 0, errs.ErrCapacityExceeded
	}
	tok := types.Token(p.base + p.next)
	p.next++
	return tok, nil
}

// Remaining reports how many more tokens Alloc can hand out.
func (p *MetaPool) Remaining() int {
	return p.size - p.next
}

// Result is the output of Build: the dictionary entries discovered this
// pass, the body with every selected occurrence substituted by its
// meta-token, and an index from meta-token to its substituted
// subsequence for quick lookup.
type Result struct {
	Entries []types.DictionaryEntry
	Body    []types.Token
	Index   map[types.Token][]types.Token
}

// Build groups occs by their underlying subsequence, drops any group
// that does not clear the compressibility quota for its length (this is
// the final, authoritative compressibility guard: upstream selection is
// best-effort and may hand Build a pattern that never converged to
// quota; Build simply leaves such occurrences as literal tokens rather
// than ever emitting a non-compressible entry), allocates one meta-token
// per surviving group, and rewrites tokens into body substituting every
// kept occurrence with its meta-token.
//
// generation is recorded on every entry this call creates (the engine
// passes the hierarchical pass depth). Each Sub is copied from tokens
// as they were before this call substituted anything, so it can only
// contain meta-tokens allocated by an earlier Build call, never one
// allocated in this one; entries therefore only reference strictly
// lower generations, which is what makes the dictionary provably
// acyclic by construction. TopoSort defends against untrusted streams
// where that invariant cannot be assumed.
func Build(tokens []types.Token, occs []types.Occurrence, delta int, pool *MetaPool, generation int) (Result, error) {
	groups := groupByKey(occs)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := groups[keys[i]], groups[keys[j]]
		if a[0].Start != b[0].Start {
			return a[0].Start < b[0].Start
		}
		return keys[i] < keys[j]
	})

	type entryPlan struct {
		key  string
		meta types.Token
		sub  []types.Token
	}
	var plans []entryPlan
	substituted := make(map[int]entryPlan) // occurrence Start -> plan, for kept occurrences only

	for _, key := range keys {
		group := groups[key]
		l := group[0].Len
		if len(group) < types.CMin(l, delta) {
			continue
		}
		meta, err := pool.Alloc()
		if err != nil {
			return Result{}, err
		}
		plan := entryPlan{key: key, meta: meta, sub: append([]types.Token(nil), group[0].Sub...)}
		plans = append(plans, plan)
		for _, o := range group {
			substituted[o.Start] = plan
		}
	}

	body := make([]types.Token, 0, len(tokens))
	index := make(map[types.Token][]types.Token, len(plans))
	entries := make([]types.DictionaryEntry, 0, len(plans))
	for _, p := range plans {
		index[p.meta] = p.sub
		entries = append(entries, types.DictionaryEntry{Meta: p.meta, Sub: p.sub, Generation: generation})
	}

	for i := 0; i < len(tokens); {
		if plan, ok := substituted[i]; ok {
			body = append(body, plan.meta)
			i += len(plan.sub)
			continue
		}
		body = append(body, tokens[i])
		i++
	}

	return Result{Entries: entries, Body: body, Index: index}, nil
}

func groupByKey(occs []types.Occurrence) map[string][]types.Occurrence {
	groups := make(map[string][]types.Occurrence)
	for _, o := range occs {
		groups[o.Key] = append(groups[o.Key], o)
	}
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].Start < g[j].Start })
	}
	return groups
}

// ReservedConflict reports the first input token that collides with the
// reserved id range [reservedBase, reservedBase+reservedCount), which
// would make the wire framing ambiguous.
func ReservedConflict(tokens []types.Token, reservedBase, reservedCount int) (types.Token, bool) {
	lo := types.Token(reservedBase)
	hi := types.Token(reservedBase + reservedCount)
	for _, t := range tokens {
		if t >= lo && t < hi {
			return t, true
		}
	}
	return 0, false
}
