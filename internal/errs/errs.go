// Package errs defines the sentinel error taxonomy shared by the engine
// and its internal stages. It exists as its own package (rather than
// living on the root package) so that internal/* packages can return
// these errors without importing the root package and creating a cycle.
package errs

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation:
	// MinLen < 2, MaxLen < MinLen, an unrecognized mode, or a negative
	// threshold.
	ErrInvalidConfig = errors.New("metapair: invalid config")

	// ErrReservedTokenInInput is returned when the input sequence
	// contains a token id reserved for dictionary delimiters, length
	// markers, or the meta-token pool.
	ErrReservedTokenInInput = errors.New("metapair: reserved token in input")

	// ErrCapacityExceeded is returned when dictionary construction would
	// allocate more meta-tokens than Config.MetaPoolSize allows.
	ErrCapacityExceeded = errors.New("metapair: meta-token pool capacity exceeded")

	// ErrMalformedCompressedStream is returned by Decompress/Parse when
	// the wire format is missing a delimiter, references an undefined
	// meta-token, contains a cyclic dictionary entry, or carries an
	// inconsistent length marker.
	ErrMalformedCompressedStream = errors.New("metapair: malformed compressed stream")

	// ErrVerificationFailed is returned when round-trip verification
	// (Config.Verify) finds that decompressing a produced stream does
	// not reproduce the original input. This indicates a correctness
	// bug in the engine, never a property of the input.
	ErrVerificationFailed = errors.New("metapair: round-trip verification failed")

	// ErrTimeout is returned when Config.Deadline elapses between
	// pipeline stages.
	ErrTimeout = errors.New("metapair: deadline exceeded")
)
