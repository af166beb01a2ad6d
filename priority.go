package metapair

// PriorityProvider is an optional external collaborator that scores a
// discovered candidate. Its return value is merged into the
// candidate's priority field before selection runs, letting a caller
// bias selection toward patterns it considers valuable for reasons
// outside the compressibility inequality (for example, patterns that
// carry semantic weight for a downstream consumer).
type PriorityProvider interface {
	Score(c Candidate, tokens []Token) int
}
