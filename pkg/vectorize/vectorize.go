package vectorize

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/vectorize/pkg/vectorize/count"
	"github.com/cognicore/vectorize/pkg/vectorize/idf"
	"github.com/cognicore/vectorize/pkg/vectorize/ingest"
	"github.com/cognicore/vectorize/pkg/vectorize/tfidf"
	"github.com/cognicore/vectorize/pkg/vectorize/vocab"
)

// Pipeline composes the tokenizer, vocabulary, counting and weighting stages.
type Pipeline struct {
	tokenizer *ingest.Tokenizer
	workers   int
	log       *logrus.Entry
}

// Options configures a Pipeline
type Options struct {
	Lowercase bool
	Workers   int
	Logger    *logrus.Entry
}

// New creates a Pipeline with the given options
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Pipeline{
		tokenizer: ingest.NewTokenizer(opts.Lowercase),
		workers:   opts.Workers,
		log:       log.WithField("component", "pipeline"),
	}
}

// Result carries every stage of one fit so callers can report or persist it.
type Result struct {
	Vocabulary *vocab.Vocabulary
	Counts     count.Matrix
	IDF        idf.Vector
	Tfidf      tfidf.Matrix
}

// BuildVocabulary returns the vocabulary of corpus.
func (p *Pipeline) BuildVocabulary(corpus []string) *vocab.Vocabulary {
	return vocab.Build(corpus, p.tokenizer)
}

// CountVectorize tokenizes corpus once, fixes its vocabulary and counts every
// document against it.
func (p *Pipeline) CountVectorize(corpus []string) (count.Matrix, *vocab.Vocabulary) {
	docs := p.tokenizer.TokenizeAll(corpus)
	v := vocab.FromTokens(docs)
	m := count.NewVectorizer(v, p.workers).Transform(docs)

	p.log.WithFields(logrus.Fields{
		"documents": len(corpus),
		"terms":     v.Len(),
		"workers":   p.workers,
	}).Debug("counted corpus")

	return m, v
}

// TfidfTransform weights a count matrix.
func (p *Pipeline) TfidfTransform(m count.Matrix) (tfidf.Matrix, error) {
	return tfidf.Transform(m)
}

// FitTransform returns the TF-IDF matrix of corpus.
func (p *Pipeline) FitTransform(corpus []string) (tfidf.Matrix, error) {
	res, err := p.Fit(corpus)
	if err != nil {
		return nil, err
	}
	return res.Tfidf, nil
}

// Fit runs every stage over corpus.
func (p *Pipeline) Fit(corpus []string) (*Result, error) {
	m, v := p.CountVectorize(corpus)

	w, err := idf.Compute(m)
	if err != nil {
		return nil, fmt.Errorf("compute idf: %w", err)
	}

	weighted, err := tfidf.Combine(m, w)
	if err != nil {
		return nil, fmt.Errorf("combine tfidf: %w", err)
	}

	p.log.WithField("documents", len(corpus)).Debug("fitted corpus")

	return &Result{
		Vocabulary: v,
		Counts:     m,
		IDF:        w,
		Tfidf:      weighted,
	}, nil
}

// BuildVocabulary returns the ordered vocabulary terms of corpus.
func BuildVocabulary(corpus []string, lowercase bool) []string {
	return New(Options{Lowercase: lowercase}).BuildVocabulary(corpus).Terms()
}

// CountVectorize returns the count matrix of corpus.
func CountVectorize(corpus []string, lowercase bool) count.Matrix {
	m, _ := New(Options{Lowercase: lowercase}).CountVectorize(corpus)
	return m
}

// TfidfTransform weights a count matrix.
func TfidfTransform(m count.Matrix) (tfidf.Matrix, error) {
	return tfidf.Transform(m)
}

// FitTransform returns the TF-IDF matrix of corpus.
func FitTransform(corpus []string, lowercase bool) (tfidf.Matrix, error) {
	return New(Options{Lowercase: lowercase}).FitTransform(corpus)
}
