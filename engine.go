package metapair

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/seiflotfy/metapair/internal/dictionary"
	"github.com/seiflotfy/metapair/internal/discovery"
	"github.com/seiflotfy/metapair/internal/selection"
	"github.com/seiflotfy/metapair/internal/subsumption"
	"github.com/seiflotfy/metapair/internal/types"
	"github.com/seiflotfy/metapair/internal/wire"
)

func (c Config) wireFormat() wire.Format {
	return wire.Format{
		Base:                 c.ReservedBase,
		MetaPoolSize:         c.MetaPoolSize,
		LengthMarkersEnabled: c.LengthMarkersEnabled,
	}
}

// DiscoverPatterns runs discovery (4.C) alone, without subsumption
// pruning or selection, for callers that want to inspect candidates
// directly.
func DiscoverPatterns(tokens []Token, cfg Config) []Candidate {
	return discovery.Run(tokens, cfg.discoveryOptions(), cfg.WarmStart)
}

// Compress discovers repeated subsequences in tokens and returns a
// CompressionResult whose Serialized field is always no longer than
// len(tokens); when no net-beneficial selection exists the result's
// dictionary is empty and Serialized equals the input, unless a static
// dictionary shortened the input enough that the static marker, an
// empty dictionary frame, and the substituted input together are still
// shorter than it, in which case Serialized is that framed sequence.
func Compress(tokens []Token, cfg Config) (*CompressionResult, error) {
	if cfg.Logger == nil {
		cfg.Logger = noopLogger()
	}
	f := cfg.wireFormat()
	if tok, bad := dictionary.ReservedConflict(tokens, int(cfg.ReservedBase), f.Span()); bad {
		return nil, fmt.Errorf("%w: token %d", ErrReservedTokenInInput, tok)
	}

	working := tokens
	staticApplied := false
	if cfg.Static != nil {
		working = cfg.Static.apply(tokens)
		staticApplied = true
	}

	metrics := &Metrics{StageNanos: map[string]int64{}}

	pool := dictionary.NewMetaPool(int(f.MetaBase()), cfg.MetaPoolSize)
	var allEntries []types.DictionaryEntry

	maxDepth := 1
	if cfg.HierarchicalEnabled {
		maxDepth = cfg.MaxDepth
	}

	for depth := 0; depth < maxDepth; depth++ {
		if err := checkDeadline(cfg.Deadline); err != nil {
			return nil, err
		}

		passStart := time.Now()
		body, entries, err := runPass(working, cfg, pool, depth)
		if err != nil {
			return nil, err
		}
		metrics.StageNanos[fmt.Sprintf("pass_%d", depth)] = time.Since(passStart).Nanoseconds()

		if len(entries) == 0 {
			break
		}

		metrics.Passes++
		allEntries = append(allEntries, entries...)
		improvement := float64(len(working)-len(body)) / float64(len(working))

		growth := entryTokenCost(entries, cfg)
		reduction := len(working) - len(body)

		cfg.Logger.Debug("compression pass complete",
			"depth", depth, "entries", len(entries), "improvement", improvement)

		working = body

		if !cfg.HierarchicalEnabled {
			break
		}
		if improvement < cfg.MinImprovement {
			cfg.Logger.Debug("stopping hierarchical loop: improvement below threshold", "depth", depth)
			break
		}
		if growth >= reduction {
			cfg.Logger.Debug("stopping hierarchical loop: dictionary growth exceeds savings", "depth", depth)
			break
		}
	}

	ordered, err := dictionary.TopoSort(allEntries)
	if err != nil {
		return nil, err
	}

	serialized := wire.Serialize(f, ordered, working, staticApplied)

	if len(serialized) >= len(tokens) {
		ordered = nil
		working = tokens
		serialized = tokens
		staticApplied = false
	}

	index := make(map[Token][]Token, len(ordered))
	for _, e := range ordered {
		index[e.Meta] = e.Sub
	}

	metrics.OriginalLength = len(tokens)
	metrics.CompressedLength = len(serialized)

	result := &CompressionResult{
		Original:         append([]Token(nil), tokens...),
		Body:             working,
		Serialized:       serialized,
		Dictionary:       ordered,
		DictionaryIndex:  index,
		OriginalLength:   len(tokens),
		CompressedLength: len(serialized),
		Metrics:          metrics,
	}

	if cfg.Verify {
		decoded, err := Decompress(serialized, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
		}
		if !tokensEqual(decoded, tokens) {
			return nil, ErrVerificationFailed
		}
	}

	return result, nil
}

// runPass executes one discovery -> subsumption -> selection ->
// dictionary-construction pass over x, per 4.H.
func runPass(x []Token, cfg Config, pool *dictionary.MetaPool, depth int) (body []Token, entries []types.DictionaryEntry, err error) {
	dopts := cfg.discoveryOptions()
	var warm []types.Candidate
	if depth == 0 {
		warm = cfg.WarmStart
	}
	cands := discovery.Run(x, dopts, warm)
	if err := checkDeadline(cfg.Deadline); err != nil {
		return nil, nil, err
	}

	minIndependent := func(l int) int { return types.CMin(l, cfg.Delta) }
	cands = subsumption.Prune(cands, minIndependent)
	if err := checkDeadline(cfg.Deadline); err != nil {
		return nil, nil, err
	}

	occs := selection.Select(cands, cfg.selectionParams())
	if err := checkDeadline(cfg.Deadline); err != nil {
		return nil, nil, err
	}
	if len(occs) == 0 {
		return x, nil, nil
	}

	res, err := dictionary.Build(x, occs, cfg.Delta, pool, depth)
	if err != nil {
		return nil, nil, err
	}
	return res.Body, res.Entries, nil
}

func entryTokenCost(entries []types.DictionaryEntry, cfg Config) int {
	cost := 0
	for _, e := range entries {
		cost += 1 + len(e.Sub) // meta + sub
		if cfg.LengthMarkersEnabled {
			cost += 2 // LenMarker + length value
		}
	}
	return cost
}

// Decompress expands a serialized stream back into the original token
// sequence. A stream with no dictionary frame is returned unchanged
// (property 8: decompressing raw input is the identity).
func Decompress(serialized []Token, cfg Config) ([]Token, error) {
	f := cfg.wireFormat()
	entries, body, staticApplied, err := wire.Parse(f, serialized)
	if err != nil {
		return nil, err
	}
	if staticApplied && cfg.Static != nil {
		entries = append(append([]types.DictionaryEntry(nil), entries...), cfg.Static.entries...)
	}

	if _, err := dictionary.TopoSort(entries); err != nil {
		return nil, err
	}

	return wire.Expand(f, entries, body)
}

// Verify reports whether decompressing result's serialized stream
// reproduces original exactly.
func Verify(original []Token, result *CompressionResult, cfg Config) (bool, error) {
	decoded, err := Decompress(result.Serialized, cfg)
	if err != nil {
		return false, err
	}
	return tokensEqual(decoded, original), nil
}

func tokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

func checkDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return nil
	}
	if time.Now().After(deadline) {
		return ErrTimeout
	}
	return nil
}
