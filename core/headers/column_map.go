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

package headers

// Column is the physical position of a leaf field.
type Column struct {
	Field    string
	Index    int
	DataType DataType
}

// ColumnMap maps leaf fields to their physical columns. It is derived from
// one layout pass and goes stale if the forest changes afterwards.
type ColumnMap struct {
	byField map[string]Column
	ordered []Column
}

func newColumnMap() *ColumnMap {
	return &ColumnMap{byField: make(map[string]Column)}
}

// add registers a column. Layout visits leaves in column order.
func (m *ColumnMap) add(c Column) {
	m.byField[c.Field] = c
	m.ordered = append(m.ordered, c)
}

// Lookup returns the column for field.
func (m *ColumnMap) Lookup(field string) (Column, bool) {
	c, ok := m.byField[field]
	return c, ok
}

// Has reports whether field is a leaf of the layout.
func (m *ColumnMap) Has(field string) bool {
	_, ok := m.byField[field]
	return ok
}

// Columns returns all columns ordered by index.
func (m *ColumnMap) Columns() []Column {
	out := make([]Column, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// Fields returns the leaf fields ordered by column index.
func (m *ColumnMap) Fields() []string {
	out := make([]string, len(m.ordered))
	for i, c := range m.ordered {
		out[i] = c.Field
	}
	return out
}

// Len returns the number of leaf columns.
func (m *ColumnMap) Len() int {
	return len(m.ordered)
}
