package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"perp-hedge-lab/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// tabular is output that renders as rows in table, csv and markdown
// formats and as value in json.
type tabular struct {
	headers []string
	rows    [][]string
	value   any
}

func (a *app) emit(t tabular) error {
	return emit(a.out, a.cfg.Output.Format, t)
}

func emit(w io.Writer, format string, t tabular) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, t.value)
	case config.FormatCSV:
		_, err := io.WriteString(w, renderCSV(t.headers, t.rows))
		return err
	case config.FormatMarkdown:
		_, err := io.WriteString(w, renderMarkdownTable(t.headers, t.rows))
		return err
	default:
		_, err := fmt.Fprintln(w, renderTable(t.headers, t.rows))
		return err
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return numberStyle
			}
			return cellStyle
		}).
		Render()
}

func renderCSV(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, ","))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(strings.Join(r, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMarkdownTable(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString("|" + strings.Join(sep, "|") + "|\n")
	for _, r := range rows {
		sb.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	return sb.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fixed formats prices and P&L with two decimals.
func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func odd(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
