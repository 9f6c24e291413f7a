package similarity

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	vecA := []float64{1, 0, 1}
	vecB := []float64{0, 1, 1}

	// 1 / (sqrt(2)*sqrt(2))
	if score := Cosine(vecA, vecB); math.Abs(score-0.5) > 1e-9 {
		t.Errorf("Expected similarity 0.5, got %f", score)
	}
	if score := Cosine(vecA, vecA); math.Abs(score-1) > 1e-9 {
		t.Errorf("Self similarity should be 1, got %f", score)
	}
}

func TestCosineDegenerate(t *testing.T) {
	if Cosine([]float64{1, 2}, []float64{1}) != 0 {
		t.Error("Length mismatch should score 0")
	}
	if Cosine([]float64{0, 0}, []float64{1, 1}) != 0 {
		t.Error("Zero vector should score 0")
	}
}

func TestPairwiseSymmetric(t *testing.T) {
	m := [][]float64{
		{0.2, 0.286, 0},
		{0, 0.143, 0.2},
		{0.1, 0, 0.1},
	}

	p := Pairwise(m)
	for i := range p {
		if math.Abs(p[i][i]-1) > 1e-9 {
			t.Errorf("Diagonal [%d] = %v, want 1", i, p[i][i])
		}
		for j := range p {
			if p[i][j] != p[j][i] {
				t.Errorf("Not symmetric at [%d][%d]", i, j)
			}
		}
	}
}

func TestNearest(t *testing.T) {
	m := [][]float64{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	got := Nearest(m, 0, 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].Row != 1 {
		t.Errorf("Expected row 1 first, got %d", got[0].Row)
	}
	for _, match := range got {
		if match.Row == 0 {
			t.Error("Reference row should be excluded")
		}
	}

	// rows 2 and 3 are both orthogonal to row 0; lower index wins the tie.
	all := Nearest(m, 0, 0)
	if len(all) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(all))
	}
	if all[1].Row != 2 || all[2].Row != 3 {
		t.Errorf("Tie order wrong: %+v", all)
	}
}

func TestNearestOutOfRange(t *testing.T) {
	if Nearest([][]float64{{1}}, 5, 1) != nil {
		t.Error("Out of range row should return nil")
	}
}
