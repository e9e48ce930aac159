package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"pdfsim/internal/compare"
)

var scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 6, 64)
}

// highlightScore styles the score only when w is a terminal.
func highlightScore(w io.Writer, score float64) string {
	if !isTerminal(w) {
		return formatScore(score)
	}
	return scoreStyle.Render(formatScore(score))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderComparison(res compare.Result) string {
	row := func(label string, doc compare.DocumentSummary) []any {
		return []any{
			label,
			doc.Path,
			doc.Range,
			fmt.Sprintf("%d/%d", doc.PagesUsed, doc.PageCount),
			doc.TokenCount,
			doc.Vocabulary,
		}
	}
	return renderTable([]column{
		{"", textColumn},
		{"Document", textColumn},
		{"Range", textColumn},
		{"Pages", countColumn},
		{"Tokens", countColumn},
		{"Distinct", countColumn},
	}, [][]any{row("1 (reference)", res.First), row("2", res.Second)})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
