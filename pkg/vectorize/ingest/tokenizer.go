package ingest

import "strings"

// Tokenizer splits documents into whitespace-delimited tokens.
type Tokenizer struct {
	lowercase bool
}

// NewTokenizer creates a tokenizer. When lowercase is set, each document is
// case-folded before it is split.
func NewTokenizer(lowercase bool) *Tokenizer {
	return &Tokenizer{lowercase: lowercase}
}

// Lowercase reports whether the tokenizer folds case.
func (t *Tokenizer) Lowercase() bool {
	return t.lowercase
}

// Tokenize splits doc into tokens.
func (t *Tokenizer) Tokenize(doc string) []string {
	return Tokenize(doc, t.lowercase)
}

// TokenizeAll tokenizes every document of a corpus, preserving order.
func (t *Tokenizer) TokenizeAll(corpus []string) [][]string {
	out := make([][]string, len(corpus))
	for i, doc := range corpus {
		out[i] = t.Tokenize(doc)
	}
	return out
}

// Tokenize optionally lower-cases doc and splits it on runs of whitespace.
// Empty and whitespace-only documents yield no tokens.
func Tokenize(doc string, lowercase bool) []string {
	if lowercase {
		doc = strings.ToLower(doc)
	}
	return strings.Fields(doc)
}
