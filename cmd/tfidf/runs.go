package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/vectorize/pkg/vectorize/store"
)

type runSummaryJSON struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Lowercase bool      `json:"lowercase"`
	Documents int       `json:"documents"`
	Terms     int       `json:"terms"`
}

type runJSON struct {
	runSummaryJSON
	Texts      []string    `json:"texts"`
	Vocabulary []string    `json:"vocabulary"`
	Counts     [][]int     `json:"counts"`
	IDF        []float64   `json:"idf"`
	Tfidf      [][]float64 `json:"tfidf"`
}

func summaryJSON(s store.RunSummary) runSummaryJSON {
	return runSummaryJSON{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Lowercase: s.Lowercase,
		Documents: s.Documents,
		Terms:     s.Terms,
	}
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
	}
	cmd.AddCommand(newRunsListCommand(ctx))
	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsDeleteCommand(ctx))
	return cmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := make([]runSummaryJSON, len(runs))
			for i, r := range runs {
				out[i] = summaryJSON(r)
			}

			return emit(cmd, ctx.cfg.Format, out, func() string {
				rows := make([][]string, len(out))
				for i, r := range out {
					rows[i] = []string{
						r.ID,
						r.CreatedAt.Local().Format(time.RFC3339),
						strconv.Itoa(r.Documents),
						strconv.Itoa(r.Terms),
						strconv.FormatBool(r.Lowercase),
					}
				}
				return renderTable([]string{"id", "created", "docs", "terms", "lowercase"}, rows)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the TF-IDF matrix of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := runJSON{
				runSummaryJSON: summaryJSON(run.Summary()),
				Texts:          run.Documents,
				Vocabulary:     run.Vocabulary,
				Counts:         run.Counts,
				IDF:            run.IDF,
				Tfidf:          run.Tfidf,
			}

			return emit(cmd, ctx.cfg.Format, out, func() string {
				ids := make([]string, len(run.Documents))
				for i := range ids {
					ids[i] = strconv.Itoa(i)
				}
				return matrixTable(ids, run.Vocabulary, func(i, j int) string {
					return formatFloat(run.Tfidf[i][j])
				})
			})
		},
	}
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			ctx.log("cli").WithField("run_id", args[0]).Info("deleted run")
			return nil
		},
	}
}
