// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package table prints aligned text tables for the command's inspection
// subcommands. Headers are bold and colored when color is enabled.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
)

// Align is the alignment of a column.
type Align uint8

const (
	Left Align = iota
	Right
)

// Table is a header row and data rows. Rows shorter than the header are
// padded with empty cells; longer rows are truncated.
type Table struct {
	Header []string
	Rows   [][]string

	// Align holds per-column alignment. Missing entries are Left.
	Align []Align

	// HeaderColor is an ANSI color index or a hex color for the header.
	HeaderColor string
}

// New returns a table with the given header.
func New(header ...string) *Table {
	return &Table{Header: header, HeaderColor: "4"}
}

// AddRow appends a row. Values are formatted with %v.
func (t *Table) AddRow(cells ...any) *Table {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.Rows = append(t.Rows, row)
	return t
}

// SetAlign sets the alignment of column i.
func (t *Table) SetAlign(i int, a Align) *Table {
	for len(t.Align) <= i {
		t.Align = append(t.Align, Left)
	}
	t.Align[i] = a
	return t
}

// Render writes the table to w. When color is false, or the NO_COLOR
// environment variable is set, no escape sequences are written.
func (t *Table) Render(w io.Writer, color bool) error {
	profile := termenv.Ascii
	if color && !termenv.EnvNoColor() {
		profile = termenv.ANSI256
	}
	out := termenv.NewOutput(w, termenv.WithProfile(profile))

	widths := t.widths()
	header := make([]string, len(widths))
	for i := range widths {
		cell := t.pad(t.cell(t.Header, i), i, widths[i])
		header[i] = out.String(cell).Bold().Foreground(out.Color(t.HeaderColor)).String()
	}
	if _, err := fmt.Fprintln(out, strings.TrimRight(strings.Join(header, "  "), " ")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		cells := make([]string, len(widths))
		for i := range widths {
			cells[i] = t.pad(t.cell(row, i), i, widths[i])
		}
		if _, err := fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// String renders the table without color.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb, false)
	return sb.String()
}

func (t *Table) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// widths returns the display width of every column, counting wide and
// combining characters as they appear on a terminal.
func (t *Table) widths() []int {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = uniseg.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			widths[i] = max(widths[i], uniseg.StringWidth(t.cell(row, i)))
		}
	}
	return widths
}

func (t *Table) pad(s string, col, width int) string {
	fill := strings.Repeat(" ", max(width-uniseg.StringWidth(s), 0))
	if col < len(t.Align) && t.Align[col] == Right {
		return fill + s
	}
	return s + fill
}
