package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/vectorize/pkg/vectorize"
	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
)

// Store persists fitted runs so their matrices can be exported for
// downstream use.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	DeleteRun(ctx context.Context, id string) error
}

// Run is one fitted corpus with every derived stage.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Lowercase  bool
	Documents  []string
	Vocabulary []string
	Counts     [][]int
	IDF        []float64
	Tfidf      [][]float64
}

// RunSummary describes a run without its matrices
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Lowercase bool
	Documents int
	Terms     int
}

// NewRun captures a fit result together with the corpus it came from.
func NewRun(corpus []string, lowercase bool, res *vectorize.Result) Run {
	docs := make([]string, len(corpus))
	copy(docs, corpus)

	counts := make([][]int, len(res.Counts))
	for i, row := range res.Counts {
		counts[i] = append([]int(nil), row...)
	}
	weights := make([][]float64, len(res.Tfidf))
	for i, row := range res.Tfidf {
		weights[i] = append([]float64(nil), row...)
	}

	return Run{
		Lowercase:  lowercase,
		Documents:  docs,
		Vocabulary: res.Vocabulary.Terms(),
		Counts:     counts,
		IDF:        append([]float64(nil), res.IDF...),
		Tfidf:      weights,
	}
}

// Summary returns the run's summary.
func (r Run) Summary() RunSummary {
	return RunSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Lowercase: r.Lowercase,
		Documents: len(r.Documents),
		Terms:     len(r.Vocabulary),
	}
}

// Validate checks that documents, vocabulary and matrices line up.
func (r Run) Validate() error {
	rows := len(r.Documents)
	cols := len(r.Vocabulary)

	if len(r.Counts) != rows || len(r.Tfidf) != rows {
		return fmt.Errorf("run has %d documents, %d count rows, %d tfidf rows: %w",
			rows, len(r.Counts), len(r.Tfidf), internalerr.ErrShapeMismatch)
	}
	if len(r.IDF) != cols {
		return fmt.Errorf("run has %d terms and %d idf weights: %w", cols, len(r.IDF), internalerr.ErrShapeMismatch)
	}
	for i := 0; i < rows; i++ {
		if len(r.Counts[i]) != cols || len(r.Tfidf[i]) != cols {
			return fmt.Errorf("row %d does not have %d columns: %w", i, cols, internalerr.ErrShapeMismatch)
		}
	}
	return nil
}

// Prepare validates r and fills in ID and CreatedAt when unset.
func Prepare(r Run, ids *IDGenerator) (Run, error) {
	if err := r.Validate(); err != nil {
		return Run{}, err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = ids.New(r.CreatedAt)
	}
	return r, nil
}
