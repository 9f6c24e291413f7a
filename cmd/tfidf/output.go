package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cognicore/vectorize/pkg/vectorize/config"
)

// renderTable draws rows under headers. Columns whose cells are all numbers
// are right-aligned so matrices line up on the decimal point.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	numeric := numericColumns(len(headers), rows)
	configs := make([]table.ColumnConfig, len(headers))
	for i := range configs {
		align := text.AlignLeft
		if numeric[i] {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// numericColumns reports, per column, whether every non-empty cell parses as
// a number. Columns with no values are not numeric.
func numericColumns(columns int, rows [][]string) []bool {
	numeric := make([]bool, columns)
	for i := range numeric {
		seen := false
		numeric[i] = true
		for _, row := range rows {
			if i >= len(row) || row[i] == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				numeric[i] = false
				break
			}
		}
		numeric[i] = numeric[i] && seen
	}
	return numeric
}

// matrixTable renders one row per document and one column per term.
func matrixTable(docIDs, terms []string, cell func(i, j int) string) string {
	headers := append([]string{"doc"}, terms...)
	rows := make([][]string, len(docIDs))
	for i, id := range docIDs {
		row := make([]string, 0, len(headers))
		row = append(row, id)
		for j := range terms {
			row = append(row, cell(i, j))
		}
		rows[i] = row
	}
	return renderTable(headers, rows)
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v as JSON or the table produced by render, depending on
// format.
func emit(cmd *cobra.Command, format string, v any, render func() string) error {
	if !useTable(cmd.OutOrStdout(), format) {
		return writeJSON(cmd, v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), render())
	return err
}

func useTable(w io.Writer, format string) bool {
	switch format {
	case config.FormatTable:
		return true
	case config.FormatJSON:
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
