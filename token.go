package metapair

import "github.com/seiflotfy/metapair/internal/types"

// Token is one element of an input or compressed sequence: an opaque,
// tokenizer-assigned integer id. metapair never interprets a token's
// value beyond equality comparison and the reserved-id contract
// described on WithReservedBase.
type Token = types.Token

// Candidate is a discovered repeated subsequence together with the
// positions in the working sequence where it occurs without mutual
// overlap.
type Candidate = types.Candidate

// Occurrence is one concrete placement of a Candidate.
type Occurrence = types.Occurrence

// DictionaryEntry maps one meta-token to the token subsequence it
// denotes.
type DictionaryEntry = types.DictionaryEntry

// Metrics records per-stage timing and size information for one
// compression operation.
type Metrics = types.Metrics

// CompressionResult is the immutable output of Compress.
type CompressionResult = types.CompressionResult
