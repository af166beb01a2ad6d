package metapair

import "github.com/seiflotfy/metapair/internal/errs"

// Sentinel errors returned by Compress, Decompress, and Verify. Callers
// should compare with errors.Is, not string matching; call sites inside
// this module wrap these with additional detail via fmt.Errorf's %w.
var (
	// ErrInvalidConfig indicates a Config failed validation (for example
	// min_len > max_len, or a non-positive meta_pool_size).
	ErrInvalidConfig = errs.ErrInvalidConfig

	// ErrReservedTokenInInput indicates the input sequence contained a
	// token id inside the reserved range the Config assigns to
	// dictionary delimiters, length markers, or the meta-token pool.
	ErrReservedTokenInInput = errs.ErrReservedTokenInInput

	// ErrCapacityExceeded indicates the meta-token pool was exhausted
	// mid-operation.
	ErrCapacityExceeded = errs.ErrCapacityExceeded

	// ErrMalformedCompressedStream indicates Parse/Decompress received a
	// stream that does not match the wire grammar: a missing DICT_END, a
	// reference to an undefined meta-token, a cyclic dictionary, or an
	// inconsistent length marker.
	ErrMalformedCompressedStream = errs.ErrMalformedCompressedStream

	// ErrVerificationFailed indicates round-trip verification detected a
	// mismatch between the original input and the decompression of the
	// operation's own output. This is always treated as fatal.
	ErrVerificationFailed = errs.ErrVerificationFailed

	// ErrTimeout indicates Config.Deadline elapsed before a pass
	// completed.
	ErrTimeout = errs.ErrTimeout
)
