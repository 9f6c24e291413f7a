package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
	"github.com/cognicore/vectorize/pkg/vectorize/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	ids  *store.IDGenerator
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:  store.NewIDGenerator(),
		runs: make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a run, replacing any run with the same ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	r, err := store.Prepare(r, s.ids)
	if err != nil {
		return store.Run{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[r.ID] = copyRun(r)
	return copyRun(r), nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.RunSummary, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r.Summary())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	delete(s.runs, id)
	return nil
}

func copyRun(r store.Run) store.Run {
	out := r
	out.Documents = append([]string(nil), r.Documents...)
	out.Vocabulary = append([]string(nil), r.Vocabulary...)
	out.IDF = append([]float64(nil), r.IDF...)
	out.Counts = make([][]int, len(r.Counts))
	for i, row := range r.Counts {
		out.Counts[i] = append([]int(nil), row...)
	}
	out.Tfidf = make([][]float64, len(r.Tfidf))
	for i, row := range r.Tfidf {
		out.Tfidf[i] = append([]float64(nil), row...)
	}
	return out
}
