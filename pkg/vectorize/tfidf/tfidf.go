package tfidf

import (
	"fmt"

	"github.com/cognicore/vectorize/pkg/vectorize/count"
	"github.com/cognicore/vectorize/pkg/vectorize/idf"
	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
	"github.com/cognicore/vectorize/pkg/vectorize/precision"
)

// Places is the number of decimals kept in published TF-IDF weights.
const Places = 3

// Matrix holds TF-IDF weights with the same shape as the count matrix it
// was derived from.
type Matrix [][]float64

// EmptyDocumentError reports a document without tokens, whose term
// frequencies are undefined.
type EmptyDocumentError struct {
	Row int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("document %d has no tokens", e.Row)
}

// Is lets errors.Is match internalerr.ErrEmptyDocument.
func (e *EmptyDocumentError) Is(target error) bool {
	return target == internalerr.ErrEmptyDocument
}

// Combine weights every count by its document's term frequency and the
// column's IDF:
//
//	tfidf[i][j] = round(count[i][j] / total(i) * idf[j], 3)
func Combine(m count.Matrix, w idf.Vector) (Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Rows() > 0 && len(w) != m.Cols() {
		return nil, fmt.Errorf("idf has %d weights for %d columns: %w", len(w), m.Cols(), internalerr.ErrShapeMismatch)
	}

	out := make(Matrix, m.Rows())
	for i, row := range m {
		total := m.RowTotal(i)
		if total == 0 {
			return nil, &EmptyDocumentError{Row: i}
		}
		weighted := make([]float64, len(row))
		for j, c := range row {
			weighted[j] = precision.Round(float64(c)/float64(total)*w[j], Places)
		}
		out[i] = weighted
	}
	return out, nil
}

// Transform computes the IDF weights of m and combines them with its counts.
func Transform(m count.Matrix) (Matrix, error) {
	w, err := idf.Compute(m)
	if err != nil {
		return nil, fmt.Errorf("compute idf: %w", err)
	}
	return Combine(m, w)
}

// TermFrequency returns the unweighted, unrounded term frequencies of row i.
func TermFrequency(m count.Matrix, i int) ([]float64, error) {
	total := m.RowTotal(i)
	if total == 0 {
		return nil, &EmptyDocumentError{Row: i}
	}
	tf := make([]float64, len(m[i]))
	for j, c := range m[i] {
		tf[j] = float64(c) / float64(total)
	}
	return tf, nil
}
