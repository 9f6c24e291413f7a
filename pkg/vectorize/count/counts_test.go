package count

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/vectorize/pkg/vectorize/ingest"
	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
	"github.com/cognicore/vectorize/pkg/vectorize/vocab"
)

func tokenize(corpus []string) [][]string {
	return ingest.NewTokenizer(true).TokenizeAll(corpus)
}

func TestVectorizeBasic(t *testing.T) {
	docs := tokenize([]string{"b a b", "c"})
	v := vocab.FromTokens(docs)

	m := Vectorize(docs, v)

	// columns: a, b, c
	expected := Matrix{
		{1, 2, 0},
		{0, 0, 1},
	}
	if !reflect.DeepEqual(m, expected) {
		t.Errorf("Expected %v, got %v", expected, m)
	}
}

func TestVectorizeShape(t *testing.T) {
	corpus := []string{
		"Crock Pot Pasta Never boil pasta again",
		"Pasta Pomodoro Fresh ingredients Parmesan to taste",
		"",
	}
	docs := tokenize(corpus)
	v := vocab.FromTokens(docs)

	m := Vectorize(docs, v)

	if m.Rows() != len(corpus) {
		t.Fatalf("Expected %d rows, got %d", len(corpus), m.Rows())
	}
	for i, row := range m {
		if len(row) != v.Len() {
			t.Errorf("Row %d has %d columns, want %d", i, len(row), v.Len())
		}
	}
	if m.RowTotal(2) != 0 {
		t.Errorf("Empty document should have total 0, got %d", m.RowTotal(2))
	}
}

func TestVectorizeLiteralCounts(t *testing.T) {
	corpus := []string{"Crock Pot Pasta Never boil pasta again"}
	docs := tokenize(corpus)
	v := vocab.FromTokens(docs)

	m := Vectorize(docs, v)

	for j, term := range v.Terms() {
		want := 0
		for _, tok := range docs[0] {
			if tok == term {
				want++
			}
		}
		if m[0][j] != want {
			t.Errorf("count(%q) = %d, want %d", term, m[0][j], want)
		}
		if m[0][j] < 0 {
			t.Errorf("count(%q) is negative", term)
		}
	}

	idx, _ := v.Index("pasta")
	if m[0][idx] != 2 {
		t.Errorf("pasta should be counted twice, got %d", m[0][idx])
	}
	if m.RowTotal(0) != 7 {
		t.Errorf("Expected 7 tokens, got %d", m.RowTotal(0))
	}
}

func TestVectorizeIgnoresUnknownTokens(t *testing.T) {
	v := vocab.FromTokens([][]string{{"a", "b"}})
	row := NewVectorizer(v, 1).Row([]string{"a", "z", "a"})

	if !reflect.DeepEqual(row, []int{2, 0}) {
		t.Errorf("Expected [2 0], got %v", row)
	}
}

func TestVectorizeParallelMatchesSequential(t *testing.T) {
	corpus := make([]string, 0, 200)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i := 0; i < 200; i++ {
		doc := ""
		for j := 0; j <= i%7; j++ {
			doc += words[(i+j)%len(words)] + " "
		}
		corpus = append(corpus, doc)
	}
	docs := tokenize(corpus)
	v := vocab.FromTokens(docs)

	seq := Vectorize(docs, v)
	for _, workers := range []int{0, 2, 4, 16, 500} {
		par := NewVectorizer(v, workers).Transform(docs)
		if !reflect.DeepEqual(seq, par) {
			t.Errorf("workers=%d produced a different matrix", workers)
		}
	}
}

func TestVectorizeEmpty(t *testing.T) {
	v := vocab.FromTokens(nil)
	m := NewVectorizer(v, 4).Transform(nil)

	if m.Rows() != 0 || m.Cols() != 0 {
		t.Errorf("Expected empty matrix, got %dx%d", m.Rows(), m.Cols())
	}
}

func TestDocumentFrequency(t *testing.T) {
	m := Matrix{
		{1, 0, 3},
		{2, 0, 0},
		{0, 0, 1},
	}

	df := m.DocumentFrequency()
	if !reflect.DeepEqual(df, []int{2, 0, 2}) {
		t.Errorf("Expected [2 0 2], got %v", df)
	}
}

func TestValidate(t *testing.T) {
	if err := (Matrix{{1, 2}, {0, 0}}).Validate(); err != nil {
		t.Errorf("Valid matrix rejected: %v", err)
	}
	if err := (Matrix{}).Validate(); err != nil {
		t.Errorf("Empty matrix rejected: %v", err)
	}

	err := (Matrix{{1, 2}, {1}}).Validate()
	if !errors.Is(err, internalerr.ErrShapeMismatch) {
		t.Errorf("Ragged matrix should fail with ErrShapeMismatch, got %v", err)
	}

	err = (Matrix{{1, -1}}).Validate()
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Negative cell should fail with ErrInvalidInput, got %v", err)
	}
}
