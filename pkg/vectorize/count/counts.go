package count

import (
	"fmt"
	"sync"

	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
	"github.com/cognicore/vectorize/pkg/vectorize/vocab"
)

// Matrix holds raw token counts: one row per document, one column per
// vocabulary term.
type Matrix [][]int

// Rows returns the number of documents.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of the first row, or 0 for an empty
// matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// RowTotal returns the number of tokens in document i.
func (m Matrix) RowTotal(i int) int {
	total := 0
	for _, c := range m[i] {
		total += c
	}
	return total
}

// DocumentFrequency returns, per column, the number of rows with a non-zero
// count.
func (m Matrix) DocumentFrequency() []int {
	df := make([]int, m.Cols())
	for _, row := range m {
		for j, c := range row {
			if c != 0 {
				df[j]++
			}
		}
	}
	return df
}

// Validate checks that every row has the same length and no cell is
// negative.
func (m Matrix) Validate() error {
	cols := m.Cols()
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, internalerr.ErrShapeMismatch)
		}
		for j, c := range row {
			if c < 0 {
				return fmt.Errorf("cell [%d][%d] is negative: %w", i, j, internalerr.ErrInvalidInput)
			}
		}
	}
	return nil
}

// Vectorizer turns tokenized documents into count rows over a fixed
// vocabulary.
type Vectorizer struct {
	vocab   *vocab.Vocabulary
	workers int
}

// NewVectorizer creates a vectorizer over v. workers > 1 counts rows
// concurrently; any other value counts sequentially.
func NewVectorizer(v *vocab.Vocabulary, workers int) *Vectorizer {
	if workers < 1 {
		workers = 1
	}
	return &Vectorizer{vocab: v, workers: workers}
}

// Vectorize counts every document sequentially.
func Vectorize(docs [][]string, v *vocab.Vocabulary) Matrix {
	return NewVectorizer(v, 1).Transform(docs)
}

// Transform returns the count matrix for docs. Row i corresponds to docs[i].
func (c *Vectorizer) Transform(docs [][]string) Matrix {
	m := make(Matrix, len(docs))
	if c.workers == 1 || len(docs) < 2 {
		for i, tokens := range docs {
			m[i] = c.Row(tokens)
		}
		return m
	}

	workers := c.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m[i] = c.Row(docs[i])
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return m
}

// Row counts the tokens of one document. Tokens outside the vocabulary are
// ignored.
func (c *Vectorizer) Row(tokens []string) []int {
	row := make([]int, c.vocab.Len())
	for _, t := range tokens {
		if j, ok := c.vocab.Index(t); ok {
			row[j]++
		}
	}
	return row
}
