package similarity

import (
	"math"
	"sort"
)

// Match is a document scored against a reference row.
type Match struct {
	Row   int
	Score float64
}

// Cosine returns the cosine similarity of a and b. Vectors of different
// length or with zero norm score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Pairwise returns the symmetric similarity matrix of all rows of m.
func Pairwise(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range out {
		out[i] = make([]float64, len(m))
	}
	for i := range m {
		for j := i; j < len(m); j++ {
			s := Cosine(m[i], m[j])
			out[i][j] = s
			out[j][i] = s
		}
	}
	return out
}

// Nearest returns up to k rows most similar to row, best first. Ties keep
// the lower row index first. k <= 0 returns every other row.
func Nearest(m [][]float64, row, k int) []Match {
	if row < 0 || row >= len(m) {
		return nil
	}

	matches := make([]Match, 0, len(m)-1)
	for i := range m {
		if i == row {
			continue
		}
		matches = append(matches, Match{Row: i, Score: Cosine(m[row], m[i])})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
