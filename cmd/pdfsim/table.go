package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnKind int

const (
	textColumn columnKind = iota
	countColumn
	scoreColumn
	tokenColumn
)

type column struct {
	title string
	kind  columnKind
}

// renderTable renders rows of typed cells. Scores may be float64 or a
// string explaining why there is none; counts may be any integer.
func renderTable(columns []column, rows [][]any) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		configs[i] = col.config(i + 1)
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range rows {
		row := make(table.Row, len(columns))
		for i := range row {
			if i < len(cells) {
				row[i] = cells[i]
			} else {
				row[i] = ""
			}
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

func (c column) config(number int) table.ColumnConfig {
	cfg := table.ColumnConfig{Number: number, AlignHeader: text.AlignLeft}
	switch c.kind {
	case countColumn:
		cfg.Align = text.AlignRight
	case scoreColumn:
		cfg.Align = text.AlignRight
		cfg.Transformer = scoreCell
	case tokenColumn:
		cfg.Transformer = tokenCell
	}
	return cfg
}

func scoreCell(val any) string {
	switch v := val.(type) {
	case float64:
		return formatScore(v)
	case error:
		return "error: " + v.Error()
	default:
		return fmt.Sprint(v)
	}
}

func tokenCell(val any) string {
	if tok, ok := val.(string); ok {
		return displayToken(tok)
	}
	return fmt.Sprint(val)
}

// rank is the 1-based position shown in ranked listings.
func rank(i int) string {
	return strconv.Itoa(i + 1)
}
