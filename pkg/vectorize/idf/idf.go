package idf

import (
	"math"

	"github.com/cognicore/vectorize/pkg/vectorize/count"
	"github.com/cognicore/vectorize/pkg/vectorize/precision"
)

// Places is the number of decimals kept in published IDF weights.
const Places = 1

// Vector holds one IDF weight per vocabulary column.
type Vector []float64

// Weight calculates the smoothed inverse document frequency of a term
//
// IDF(t) = ln((N + 1) / (df + 1)) + 1
//
// Where:
//   - N = total number of documents
//   - df = number of documents containing t
//
// The add-one smoothing keeps terms present in every document at a weight
// of 1 rather than 0.
func Weight(n, df int) float64 {
	return math.Log(float64(n+1)/float64(df+1)) + 1
}

// Compute returns the rounded IDF weight of every column of m.
// A matrix with no rows yields an empty vector.
func Compute(m count.Matrix) (Vector, error) {
	if m.Rows() == 0 {
		return Vector{}, nil
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.Rows()
	df := m.DocumentFrequency()
	out := make(Vector, len(df))
	for j, d := range df {
		out[j] = precision.Round(Weight(n, d), Places)
	}
	return out, nil
}
