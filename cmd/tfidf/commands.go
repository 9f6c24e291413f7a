package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cognicore/vectorize/internal/corpus"
	"github.com/cognicore/vectorize/pkg/vectorize/similarity"
	"github.com/cognicore/vectorize/pkg/vectorize/store"
)

type vocabReport struct {
	Terms []string `json:"terms"`
}

type countReport struct {
	Documents  []string `json:"documents"`
	Vocabulary []string `json:"vocabulary"`
	Counts     [][]int  `json:"counts"`
}

type idfReport struct {
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
}

type transformReport struct {
	RunID      string      `json:"run_id,omitempty"`
	Documents  []string    `json:"documents"`
	Vocabulary []string    `json:"vocabulary"`
	Tfidf      [][]float64 `json:"tfidf"`
}

type similarEntry struct {
	Row   int     `json:"row"`
	Doc   string  `json:"doc"`
	Score float64 `json:"score"`
}

func documentIDs(docs []corpus.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		if ids[i] == "" {
			ids[i] = strconv.Itoa(i)
		}
	}
	return ids
}

func newVocabCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab <corpus>",
		Short: "List the vocabulary of a corpus in column order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := ctx.loadCorpus(args[0])
			if err != nil {
				return err
			}
			terms := ctx.pipeline().BuildVocabulary(corpus.Texts(docs)).Terms()

			return emit(cmd, ctx.cfg.Format, vocabReport{Terms: terms}, func() string {
				rows := make([][]string, len(terms))
				for i, term := range terms {
					rows[i] = []string{strconv.Itoa(i), term}
				}
				return renderTable([]string{"#", "term"}, rows)
			})
		},
	}
}

func newCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count <corpus>",
		Short: "Print the document-by-term count matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := ctx.loadCorpus(args[0])
			if err != nil {
				return err
			}
			m, v := ctx.pipeline().CountVectorize(corpus.Texts(docs))

			ids := documentIDs(docs)
			report := countReport{Documents: ids, Vocabulary: v.Terms(), Counts: m}
			return emit(cmd, ctx.cfg.Format, report, func() string {
				return matrixTable(ids, report.Vocabulary, func(i, j int) string {
					return strconv.Itoa(m[i][j])
				})
			})
		},
	}
}

func newIDFCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "idf <corpus>",
		Short: "Print the smoothed inverse document frequency of every term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := ctx.loadCorpus(args[0])
			if err != nil {
				return err
			}
			res, err := ctx.pipeline().Fit(corpus.Texts(docs))
			if err != nil {
				return err
			}

			report := idfReport{Vocabulary: res.Vocabulary.Terms(), IDF: res.IDF}
			return emit(cmd, ctx.cfg.Format, report, func() string {
				rows := make([][]string, len(report.Vocabulary))
				for j, term := range report.Vocabulary {
					rows[j] = []string{term, formatFloat(report.IDF[j])}
				}
				return renderTable([]string{"term", "idf"}, rows)
			})
		},
	}
}

func newTransformCommand(ctx *commandContext) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "transform <corpus>",
		Short: "Print the TF-IDF matrix of a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := ctx.loadCorpus(args[0])
			if err != nil {
				return err
			}
			texts := corpus.Texts(docs)
			res, err := ctx.pipeline().Fit(texts)
			if err != nil {
				return err
			}

			ids := documentIDs(docs)
			report := transformReport{Documents: ids, Vocabulary: res.Vocabulary.Terms(), Tfidf: res.Tfidf}

			if save {
				st, err := ctx.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()

				run, err := st.SaveRun(cmd.Context(), store.NewRun(texts, ctx.cfg.Lowercase, res))
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				report.RunID = run.ID
				ctx.log("cli").WithField("run_id", run.ID).Info("saved run")
			}

			return emit(cmd, ctx.cfg.Format, report, func() string {
				return matrixTable(ids, report.Vocabulary, func(i, j int) string {
					return formatFloat(res.Tfidf[i][j])
				})
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Persist the fitted run to the configured store")
	return cmd
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var (
		doc int
		top int
	)

	cmd := &cobra.Command{
		Use:   "similar <corpus>",
		Short: "Rank documents by cosine similarity of their TF-IDF rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := ctx.loadCorpus(args[0])
			if err != nil {
				return err
			}
			if doc < 0 || doc >= len(docs) {
				return fmt.Errorf("--doc %d out of range for %d documents", doc, len(docs))
			}

			weighted, err := ctx.pipeline().FitTransform(corpus.Texts(docs))
			if err != nil {
				return err
			}

			ids := documentIDs(docs)
			matches := similarity.Nearest(weighted, doc, top)
			entries := make([]similarEntry, len(matches))
			for i, m := range matches {
				entries[i] = similarEntry{Row: m.Row, Doc: ids[m.Row], Score: m.Score}
			}

			return emit(cmd, ctx.cfg.Format, entries, func() string {
				rows := make([][]string, len(entries))
				for i, e := range entries {
					rows[i] = []string{strconv.Itoa(i + 1), e.Doc, strconv.FormatFloat(e.Score, 'f', 4, 64)}
				}
				return renderTable([]string{"rank", "doc", "score"}, rows)
			})
		},
	}

	cmd.Flags().IntVar(&doc, "doc", 0, "Row index of the reference document")
	cmd.Flags().IntVar(&top, "top", 5, "Number of matches to show (0 for all)")
	return cmd
}
