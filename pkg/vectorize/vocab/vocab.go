package vocab

import (
	"sort"

	"github.com/cognicore/vectorize/pkg/vectorize/ingest"
)

// Vocabulary is the fixed column ordering shared by every matrix derived
// from one corpus. It is immutable once built and safe for concurrent reads.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// Build tokenizes every document of corpus and returns its vocabulary.
func Build(corpus []string, tok *ingest.Tokenizer) *Vocabulary {
	return FromTokens(tok.TokenizeAll(corpus))
}

// FromTokens builds a vocabulary from already tokenized documents.
// Terms are ordered lexicographically so the same corpus always yields the
// same columns.
func FromTokens(docs [][]string) *Vocabulary {
	seen := make(map[string]struct{})
	for _, tokens := range docs {
		for _, t := range tokens {
			seen[t] = struct{}{}
		}
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	return &Vocabulary{terms: terms, index: index}
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the ordered term list.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Term returns the term at column i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Contains reports whether term is part of the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[term]
	return ok
}
