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

// Package rendering turns report plans into concrete artifacts: xlsx
// workbooks, HTML tables and plain text grids.
package rendering

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/report"
)

// DateLayout is the layout used when a date is rendered as text.
const DateLayout = "2006-01-02"

// GridSink materializes a plan into an output format.
type GridSink interface {
	Render(w io.Writer, p *report.Plan) error
}

// gridCell is one visible cell, header or body, with its absolute extent.
type gridCell struct {
	Text       string
	Value      any
	DataType   headers.DataType
	Header     bool
	Merged     bool
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int
}

// grid is the flattened view of a plan shared by all sinks. owner maps
// every (row, column) to the index of the cell covering it, or -1.
type grid struct {
	rows    int
	columns int
	cells   []gridCell
	owner   [][]int
}

func newGrid(p *report.Plan) *grid {
	cm := p.Columns()
	g := &grid{
		rows:    p.BodyStart + len(p.Rows),
		columns: cm.Len(),
	}
	g.owner = make([][]int, g.rows)
	for r := range g.owner {
		g.owner[r] = make([]int, g.columns)
		for c := range g.owner[r] {
			g.owner[r][c] = -1
		}
	}

	for _, hc := range p.Layout.Cells {
		g.add(gridCell{
			Text:       hc.Name,
			Value:      hc.Name,
			DataType:   headers.String,
			Header:     true,
			Row:        hc.Row,
			Column:     hc.Column,
			RowSpan:    hc.RowSpan,
			ColumnSpan: hc.ColumnSpan,
		})
	}

	type at struct{ row, column int }
	runs := make(map[at]int, len(p.Merges))
	for _, m := range p.Merges {
		runs[at{m.FirstRow, m.Column}] = m.Rows()
	}

	columns := cm.Columns()
	for i, rec := range p.Rows {
		row := p.BodyStart + i
		for _, col := range columns {
			if g.owner[row][col.Index] >= 0 {
				continue
			}
			span, merged := runs[at{row, col.Index}]
			if !merged {
				span = 1
			}
			v := rec.Get(col.Field)
			g.add(gridCell{
				Text:       Format(v, col.DataType),
				Value:      v,
				DataType:   col.DataType,
				Merged:     merged,
				Row:        row,
				Column:     col.Index,
				RowSpan:    span,
				ColumnSpan: 1,
			})
		}
	}
	return g
}

func (g *grid) add(c gridCell) {
	idx := len(g.cells)
	g.cells = append(g.cells, c)
	for r := c.Row; r < c.Row+c.RowSpan && r < g.rows; r++ {
		for col := c.Column; col < c.Column+c.ColumnSpan && col < g.columns; col++ {
			g.owner[r][col] = idx
		}
	}
}

// rowCells returns the cells whose top-left corner is on row, in column
// order.
func (g *grid) rowCells(row int) []gridCell {
	var out []gridCell
	for c := 0; c < g.columns; c++ {
		idx := g.owner[row][c]
		if idx < 0 {
			continue
		}
		cell := g.cells[idx]
		if cell.Row == row && cell.Column == c {
			out = append(out, cell)
		}
	}
	return out
}

// Format renders a cell value as text. nil renders empty, dates use
// DateLayout and numbers use their shortest exact form.
func Format(v any, dt headers.DataType) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if dt == headers.Date {
			return x.Format(DateLayout)
		}
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
