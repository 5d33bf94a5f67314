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

package grouping

import (
	"fmt"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
)

// Merge instructs a sink to render rows FirstRow..LastRow (inclusive) of
// Column as one cell.
type Merge struct {
	Field    string
	Column   int
	FirstRow int
	LastRow  int
}

// Rows returns the number of rows covered by the merge.
func (m Merge) Rows() int {
	return m.LastRow - m.FirstRow + 1
}

// UnknownGroupFieldError reports a group field that is not a leaf column.
type UnknownGroupFieldError struct {
	Field string
}

func (e *UnknownGroupFieldError) Error() string {
	return fmt.Sprintf("group field %q is not a leaf column", e.Field)
}

// DuplicateGroupFieldError reports a group field listed more than once.
type DuplicateGroupFieldError struct {
	Field string
}

func (e *DuplicateGroupFieldError) Error() string {
	return fmt.Sprintf("group field %q listed more than once", e.Field)
}

// run tracks the open run of one group column.
type run struct {
	open  bool
	start int
	value any
}

// Merger detects contiguous runs of equal values in group columns over a
// stream of sorted rows. Each group field has an independent tracker.
//
// A run whose value is nil is never extended: every row closes it and
// opens a new one, so repeated nils do not merge.
type Merger struct {
	fields  []string
	columns []int
	runs    []run
	merges  []Merge
}

// NewMerger returns a merger for the group fields, resolving their columns
// in cm.
func NewMerger(fields []string, cm *headers.ColumnMap) (*Merger, error) {
	m := &Merger{
		fields:  make([]string, 0, len(fields)),
		columns: make([]int, 0, len(fields)),
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		col, ok := cm.Lookup(f)
		if !ok {
			return nil, &UnknownGroupFieldError{Field: f}
		}
		if seen[f] {
			return nil, &DuplicateGroupFieldError{Field: f}
		}
		seen[f] = true
		m.fields = append(m.fields, f)
		m.columns = append(m.columns, col.Index)
	}
	m.runs = make([]run, len(m.fields))
	return m, nil
}

// Observe feeds the record rendered at row. Rows must be observed in
// increasing order without gaps.
func (m *Merger) Observe(row int, r records.Record) {
	for i, field := range m.fields {
		v := r.Get(field)
		cur := &m.runs[i]
		switch {
		case !cur.open:
		case cur.value != nil && records.Equal(cur.value, v):
			continue
		default:
			m.close(i, row-1)
		}
		*cur = run{open: true, start: row, value: v}
	}
}

// Flush closes every open run at lastRow and returns all merges found so
// far. Runs of a single row are dropped.
func (m *Merger) Flush(lastRow int) []Merge {
	for i := range m.runs {
		if m.runs[i].open {
			m.close(i, lastRow)
			m.runs[i] = run{}
		}
	}
	return m.merges
}

func (m *Merger) close(i, end int) {
	start := m.runs[i].start
	if end > start {
		m.merges = append(m.merges, Merge{
			Field:    m.fields[i],
			Column:   m.columns[i],
			FirstRow: start,
			LastRow:  end,
		})
	}
}

// PlanMerges walks sorted rows and returns the merge instructions for the
// group fields. rowOffset is added to every row index, so passing the
// header depth yields absolute sheet rows.
func PlanMerges(rows []records.Record, fields []string, cm *headers.ColumnMap, rowOffset int) ([]Merge, error) {
	m, err := NewMerger(fields, cm)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i, r := range rows {
		m.Observe(rowOffset+i, r)
	}
	return m.Flush(rowOffset + len(rows) - 1), nil
}

// MergesByField groups merges by their field, keeping row order.
func MergesByField(merges []Merge) map[string][]Merge {
	out := make(map[string][]Merge)
	for _, m := range merges {
		out[m.Field] = append(out[m.Field], m)
	}
	return out
}
