package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/vectorize/pkg/vectorize"
	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
)

var pastaCorpus = []string{
	"Crock Pot Pasta Never boil pasta again",
	"Pasta Pomodoro Fresh ingredients Parmesan to taste",
}

func fitRun(t *testing.T) Run {
	t.Helper()
	res, err := vectorize.New(vectorize.Options{Lowercase: true}).Fit(pastaCorpus)
	require.NoError(t, err)
	return NewRun(pastaCorpus, true, res)
}

func TestNewRun(t *testing.T) {
	r := fitRun(t)

	assert.True(t, r.Lowercase)
	assert.Equal(t, pastaCorpus, r.Documents)
	assert.Len(t, r.Vocabulary, 12)
	assert.Len(t, r.IDF, 12)
	assert.Len(t, r.Counts, 2)
	assert.Len(t, r.Tfidf, 2)
	assert.NoError(t, r.Validate())

	s := r.Summary()
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, 12, s.Terms)
}

func TestValidateShapeMismatch(t *testing.T) {
	cases := map[string]func(*Run){
		"missing tfidf row": func(r *Run) { r.Tfidf = r.Tfidf[:1] },
		"short idf":         func(r *Run) { r.IDF = r.IDF[:3] },
		"short count row":   func(r *Run) { r.Counts[1] = r.Counts[1][:5] },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := fitRun(t)
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), internalerr.ErrShapeMismatch)
		})
	}
}

func TestPrepareAssignsIDAndTime(t *testing.T) {
	ids := NewIDGenerator()

	r, err := Prepare(fitRun(t), ids)
	require.NoError(t, err)
	assert.Len(t, r.ID, 26)
	assert.False(t, r.CreatedAt.IsZero())

	fixed := fitRun(t)
	fixed.ID = "custom"
	fixed.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r, err = Prepare(fixed, ids)
	require.NoError(t, err)
	assert.Equal(t, "custom", r.ID)
	assert.Equal(t, fixed.CreatedAt, r.CreatedAt)
}

func TestIDGeneratorMonotonic(t *testing.T) {
	ids := NewIDGenerator()
	now := time.Now()

	prev := ids.New(now)
	for i := 0; i < 100; i++ {
		next := ids.New(now)
		assert.Greater(t, next, prev)
		prev = next
	}
}
