/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rendering

import (
	"io"
	"strings"

	"github.com/google/gridreport/core/report"
	"github.com/mattn/go-runewidth"
)

// TextSink renders a plan as a plain text grid with ASCII borders. A merged
// cell prints its text on its first row; the borders inside it are left
// blank. Widths are measured in terminal cells so wide runes line up.
type TextSink struct{}

// NewTextSink returns a text sink.
func NewTextSink() *TextSink {
	return &TextSink{}
}

// Render writes the grid to w.
func (s *TextSink) Render(w io.Writer, p *report.Plan) error {
	_, err := io.WriteString(w, s.String(p))
	return err
}

// String returns the rendered grid.
func (s *TextSink) String(p *report.Plan) string {
	g := newGrid(p)
	if g.columns == 0 {
		return ""
	}
	widths := columnWidths(g)

	var sb strings.Builder
	sb.WriteString(g.separator(-1, widths))
	for r := 0; r < g.rows; r++ {
		sb.WriteString(g.line(r, widths))
		sb.WriteString(g.separator(r, widths))
	}
	return sb.String()
}

// columnWidths sizes each column to its widest single column cell, then
// widens the last column of any spanning cell whose text does not fit.
func columnWidths(g *grid) []int {
	widths := make([]int, g.columns)
	for i := range widths {
		widths[i] = 1
	}
	for _, c := range g.cells {
		if c.ColumnSpan == 1 {
			if w := runewidth.StringWidth(c.Text); w > widths[c.Column] {
				widths[c.Column] = w
			}
		}
	}
	for _, c := range g.cells {
		if c.ColumnSpan == 1 {
			continue
		}
		if missing := runewidth.StringWidth(c.Text) - spanWidth(widths, c.Column, c.ColumnSpan); missing > 0 {
			widths[c.Column+c.ColumnSpan-1] += missing
		}
	}
	return widths
}

// spanWidth is the inner width of a cell covering span columns, including
// the borders it swallows.
func spanWidth(widths []int, column, span int) int {
	w := 3 * (span - 1)
	for c := column; c < column+span; c++ {
		w += widths[c]
	}
	return w
}

func (g *grid) line(row int, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for c := 0; c < g.columns; {
		idx := g.owner[row][c]
		if idx < 0 {
			sb.WriteString(" " + strings.Repeat(" ", widths[c]) + " |")
			c++
			continue
		}
		cell := g.cells[idx]
		span := cell.Column + cell.ColumnSpan - c
		text := ""
		if cell.Row == row {
			text = cell.Text
		}
		sb.WriteString(" " + runewidth.FillRight(text, spanWidth(widths, c, span)) + " |")
		c += span
	}
	sb.WriteString("\n")
	return sb.String()
}

// separator returns the border below row; -1 is the top border. Segments
// where a cell continues onto the next row stay blank.
func (g *grid) separator(row int, widths []int) string {
	continues := func(c int) int {
		if row < 0 || row+1 >= g.rows {
			return -1
		}
		if idx := g.owner[row][c]; idx >= 0 && idx == g.owner[row+1][c] {
			return idx
		}
		return -1
	}

	var sb strings.Builder
	prev := -1
	for c := 0; c <= g.columns; c++ {
		cur := -1
		if c < g.columns {
			cur = continues(c)
		}
		switch {
		case prev >= 0 && prev == cur && g.owner[row][c-1] == g.owner[row][c]:
			sb.WriteString(" ")
		case prev >= 0 || cur >= 0:
			sb.WriteString("|")
		default:
			sb.WriteString("+")
		}
		if c < g.columns {
			fill := "-"
			if cur >= 0 {
				fill = " "
			}
			sb.WriteString(strings.Repeat(fill, widths[c]+2))
		}
		prev = cur
	}
	sb.WriteString("\n")
	return sb.String()
}
