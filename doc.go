// Package metapair compresses sequences of opaque integer tokens by
// discovering frequently repeated subsequences, replacing them with
// newly allocated meta-tokens, and emitting a dictionary-prefixed wire
// stream that a matching Decompress call can losslessly expand.
//
// A compression operation is a pure function of its input and Config:
// it performs no I/O, holds no package-level mutable state, and never
// blocks. Discovery, subsumption pruning, selection, and dictionary
// construction each live in their own internal package; this package is
// the orchestration layer tying them into one or more hierarchical
// passes and the public API surface.
package metapair
