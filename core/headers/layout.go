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

// Cell is the absolute placement of one header node on the header grid.
//
// A group cell covers a single header row and all of its leaf columns. A
// leaf cell covers one column and fills down to the last header row, so
// leaves under shallow subtrees line up with the deepest ones.
type Cell struct {
	Field    string
	Name     string
	DataType DataType
	Group    bool

	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int

	// Levels is the depth of the node's subtree, 1 for a leaf.
	Levels int
}

// LastRow returns the last header row covered by the cell.
func (c Cell) LastRow() int {
	return c.Row + c.RowSpan - 1
}

// LastColumn returns the last column covered by the cell.
func (c Cell) LastColumn() int {
	return c.Column + c.ColumnSpan - 1
}

// Layout is the result of laying out a forest: the number of header rows,
// every header cell in depth-first order and the leaf column map.
type Layout struct {
	HeaderDepth int
	Cells       []Cell
	Columns     *ColumnMap
}

// NewLayout validates the forest and computes absolute positions for every
// node. Spans are derived from the tree shape alone; the forest is not
// modified, so a forest built by hand or through Attach lays out the same.
func NewLayout(forest Forest) (*Layout, error) {
	if err := validate(forest); err != nil {
		return nil, err
	}

	l := &Layout{
		Columns: newColumnMap(),
	}
	for _, root := range forest {
		if d := root.DeepestLevel(); d > l.HeaderDepth {
			l.HeaderDepth = d
		}
	}

	offset := 0
	for _, root := range forest {
		offset += l.place(root, 0, offset)
	}
	return l, nil
}

// place appends the cell for n and its subtree and returns the number of
// leaf columns it covers.
func (l *Layout) place(n *HeaderNode, row, column int) int {
	if !n.IsGroup() {
		l.Cells = append(l.Cells, Cell{
			Field:      n.Field,
			Name:       n.Name,
			DataType:   n.DataType,
			Row:        row,
			Column:     column,
			RowSpan:    l.HeaderDepth - row,
			ColumnSpan: 1,
			Levels:     1,
		})
		l.Columns.add(Column{Field: n.Field, Index: column, DataType: n.DataType})
		return 1
	}

	index := len(l.Cells)
	l.Cells = append(l.Cells, Cell{
		Field:    n.Field,
		Name:     n.Name,
		DataType: n.DataType,
		Group:    true,
		Row:      row,
		Column:   column,
		RowSpan:  1,
		Levels:   n.DeepestLevel(),
	})

	span := 0
	for _, c := range n.Children {
		span += l.place(c, row+1, column+span)
	}
	l.Cells[index].ColumnSpan = span
	return span
}

// validate rejects duplicate headers anywhere in the forest, leaves sharing
// a field and leaves without a field.
func validate(forest Forest) error {
	seen := make(map[headerKey]bool)
	fields := make(map[string]bool)
	var err error
	for _, root := range forest {
		root.Walk(func(n *HeaderNode) bool {
			k := keyOf(n)
			if seen[k] {
				err = &DuplicateHeaderError{Field: n.Field, Name: n.Name}
				return false
			}
			seen[k] = true
			if n.IsGroup() {
				return true
			}
			if n.Field == "" {
				err = &MissingFieldError{Name: n.Name}
				return false
			}
			if fields[n.Field] {
				err = &DuplicateHeaderError{Field: n.Field, Name: n.Name}
				return false
			}
			fields[n.Field] = true
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
