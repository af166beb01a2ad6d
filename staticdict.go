package metapair

import "sort"

// StaticDictionary is an immutable meta-token to subsequence mapping
// supplied by an external collaborator and pre-substituted into the
// input before dynamic discovery runs. Unlike the dictionary entries
// metapair discovers itself, a StaticDictionary's entries and meta-token
// ids are chosen entirely by the caller; metapair only applies them.
type StaticDictionary struct {
	entries []DictionaryEntry
}

// NewStaticDictionary builds a StaticDictionary from caller-supplied
// entries. Entries are tried longest-subsequence-first so a shorter
// entry never shadows a longer one that also matches at the same
// position.
func NewStaticDictionary(entries []DictionaryEntry) *StaticDictionary {
	sorted := append([]DictionaryEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i].Sub) > len(sorted[j].Sub) })
	return &StaticDictionary{entries: sorted}
}

// apply substitutes every non-overlapping match of a static entry's
// Sub, left to right, returning the rewritten sequence.
func (d *StaticDictionary) apply(tokens []Token) []Token {
	if d == nil || len(d.entries) == 0 {
		return tokens
	}
	out := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		matched := false
		for _, e := range d.entries {
			if matches(tokens, i, e.Sub) {
				out = append(out, e.Meta)
				i += len(e.Sub)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

func matches(tokens []Token, at int, sub []Token) bool {
	if len(sub) == 0 || at+len(sub) > len(tokens) {
		return false
	}
	for i, t := range sub {
		if tokens[at+i] != t {
			return false
		}
	}
	return true
}
