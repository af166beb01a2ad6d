package metapair

import (
	"log/slog"
	"time"

	"github.com/seiflotfy/metapair/internal/discovery"
	"github.com/seiflotfy/metapair/internal/selection"
)

// DiscoveryMode selects which pattern-discovery strategy a pass uses.
type DiscoveryMode int

const (
	SuffixArray DiscoveryMode = iota
	SlidingWindow
	BPE
)

// SelectionMode selects which non-overlap selection algorithm a pass
// uses.
type SelectionMode int

const (
	Greedy SelectionMode = iota
	Optimal
	Beam
)

// Config holds configuration for one compression operation. A Config is
// built via New with Option functions and is never mutated afterward;
// fields are documented inline the way onpair's Config documents its
// fields, and the remaining ones by their With* option.
type Config struct {
	MinLen int // inclusive minimum pattern length; default 2
	MaxLen int // inclusive maximum pattern length; default 8

	Discovery    DiscoveryMode
	BPEMaxMerges int // iteration cap for the BPE discovery strategy; 0 uses MaxLen*4

	Selection SelectionMode
	BeamWidth int // beam search width; 0 uses a default of 8

	Delta int // dictionary overhead per pattern; 1 when LengthMarkersEnabled, else 0 (set automatically)

	HierarchicalEnabled bool
	MaxDepth            int     // maximum number of hierarchical passes; default 3
	MinImprovement      float64 // early-stop threshold on per-pass length reduction fraction; default 0.02

	LengthMarkersEnabled bool // default true
	MetaPoolSize         int  // maximum meta-tokens allocatable per operation; default 500
	ReservedBase         Token

	Verify bool // perform round-trip verification at the end of an operation

	Deadline time.Time // zero means no deadline

	Priority  PriorityProvider // optional external candidate scorer
	Static    *StaticDictionary
	WarmStart []Candidate // candidates carried over from a previous result, re-validated against the current input

	Logger *slog.Logger
}

// Option is a functional option for configuring a compression
// operation, following the Config/Option pair onpair.go uses and the
// WoozyMasta-lzo DefaultXOptions idiom.
type Option func(*Config)

// WithLenRange sets the inclusive pattern length range considered
// during discovery.
func WithLenRange(min, max int) Option {
	return func(c *Config) { c.MinLen, c.MaxLen = min, max }
}

// WithDiscovery selects the discovery strategy.
func WithDiscovery(mode DiscoveryMode) Option {
	return func(c *Config) { c.Discovery = mode }
}

// WithBPEMaxMerges bounds the BPE discovery strategy's merge iterations.
func WithBPEMaxMerges(n int) Option {
	return func(c *Config) { c.BPEMaxMerges = n }
}

// WithSelection selects the non-overlap selection algorithm.
func WithSelection(mode SelectionMode) Option {
	return func(c *Config) { c.Selection = mode }
}

// WithBeamWidth sets the beam search width used by the Beam selection
// mode.
func WithBeamWidth(n int) Option {
	return func(c *Config) { c.BeamWidth = n }
}

// WithHierarchical enables multi-pass re-compression of the body
// produced by the previous pass.
func WithHierarchical(maxDepth int, minImprovement float64) Option {
	return func(c *Config) {
		c.HierarchicalEnabled = true
		c.MaxDepth = maxDepth
		c.MinImprovement = minImprovement
	}
}

// WithLengthMarkers enables or disables the LEN(k) marker emitted at
// the start of each dictionary entry.
func WithLengthMarkers(enabled bool) Option {
	return func(c *Config) { c.LengthMarkersEnabled = enabled }
}

// WithMetaPoolSize sets the maximum number of meta-tokens allocatable
// per operation.
func WithMetaPoolSize(n int) Option {
	return func(c *Config) { c.MetaPoolSize = n }
}

// WithReservedBase sets the base of the reserved token id range used
// for dictionary delimiters, length markers, and meta-tokens. Callers
// must ensure their tokenizer never emits ids in
// [base, base+4+MetaPoolSize).
func WithReservedBase(base Token) Option {
	return func(c *Config) { c.ReservedBase = base }
}

// WithVerify enables round-trip verification at the end of every
// compression operation.
func WithVerify(v bool) Option {
	return func(c *Config) { c.Verify = v }
}

// WithDeadline sets a wall-clock deadline polled between pipeline
// stages.
func WithDeadline(t time.Time) Option {
	return func(c *Config) { c.Deadline = t }
}

// WithPriorityProvider installs a candidate scorer merged into
// candidate priority prior to selection.
func WithPriorityProvider(p PriorityProvider) Option {
	return func(c *Config) { c.Priority = p }
}

// WithStaticDictionary installs a static dictionary pre-substituted
// into the input before dynamic discovery runs.
func WithStaticDictionary(d *StaticDictionary) Option {
	return func(c *Config) { c.Static = d }
}

// WithLogger installs a structured logger. A nil logger (the default)
// disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithWarmStart seeds discovery with candidates carried over from a
// previous compression result (for example, a prior chunk in a
// streaming facade). Stale candidates that no longer match the current
// input are discarded; this never makes discovery produce an incorrect
// result, only a potentially faster one.
func WithWarmStart(candidates []Candidate) Option {
	return func(c *Config) { c.WarmStart = candidates }
}

func defaultConfig() Config {
	return Config{
		MinLen:               2,
		MaxLen:               8,
		Discovery:            SuffixArray,
		Selection:            Greedy,
		BeamWidth:            8,
		HierarchicalEnabled:  false,
		MaxDepth:             3,
		MinImprovement:       0.02,
		LengthMarkersEnabled: true,
		MetaPoolSize:         500,
		ReservedBase:         1 << 30,
	}
}

// New builds a Config from the given options, applied over the
// defaults, and validates it.
func New(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.LengthMarkersEnabled {
		cfg.Delta = 1
	} else {
		cfg.Delta = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.MinLen < 2:
		return errInvalid("min_len must be >= 2")
	case c.MaxLen < c.MinLen:
		return errInvalid("max_len must be >= min_len")
	case c.MetaPoolSize < 1:
		return errInvalid("meta_pool_size must be >= 1")
	case c.MaxDepth < 1:
		return errInvalid("max_depth must be >= 1")
	case c.BeamWidth < 0:
		return errInvalid("beam_width must be >= 0")
	case c.MinImprovement < 0:
		return errInvalid("min_improvement must be >= 0")
	case c.Discovery < SuffixArray || c.Discovery > BPE:
		return errInvalid("unknown discovery mode")
	case c.Selection < Greedy || c.Selection > Beam:
		return errInvalid("unknown selection mode")
	}
	return nil
}

func (c Config) discoveryOptions() discovery.Options {
	mode := discovery.SuffixArray
	switch c.Discovery {
	case SlidingWindow:
		mode = discovery.SlidingWindow
	case BPE:
		mode = discovery.BPE
	}
	var scorers []discovery.Scorer
	if c.Priority != nil {
		p := c.Priority
		scorers = append(scorers, func(cand Candidate, tokens []Token) int {
			return p.Score(cand, tokens)
		})
	}
	return discovery.Options{
		MinLen:       c.MinLen,
		MaxLen:       c.MaxLen,
		Delta:        c.Delta,
		Mode:         mode,
		BPEMaxMerges: c.BPEMaxMerges,
		Scorers:      scorers,
	}
}

func (c Config) selectionParams() selection.Params {
	mode := selection.Greedy
	switch c.Selection {
	case Optimal:
		mode = selection.Optimal
	case Beam:
		mode = selection.Beam
	}
	return selection.Params{
		Mode:      mode,
		Delta:     c.Delta,
		BeamWidth: c.BeamWidth,
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func errInvalid(msg string) error {
	return &configError{msg: msg}
}

type configError struct{ msg string }

func (e *configError) Error() string { return "metapair: invalid config: " + e.msg }
func (e *configError) Unwrap() error { return ErrInvalidConfig }
