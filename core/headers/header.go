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

// Package headers models nested report column headers and lays them out
// onto a grid of header rows and leaf columns.
package headers

// DataType describes the kind of values a leaf column holds.
// It is descriptive only; sinks use it to pick a cell representation.
type DataType int

const (
	String DataType = iota
	Integer
	Double
	Date
)

// String returns the string representation of the data type.
func (t DataType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Double:
		return "double"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// HeaderNode is one header cell. A node without children is a leaf and owns
// exactly one physical column; a node with children is a group.
//
// RowIndex, ColumnIndex, RowSpan and ColumnSpan are maintained by Attach.
// ColumnIndex is relative to the parent's subtree; Layout produces the
// absolute positions.
type HeaderNode struct {
	Field    string
	Name     string
	DataType DataType
	Children []*HeaderNode

	RowIndex    int
	ColumnIndex int
	RowSpan     int
	ColumnSpan  int

	attached bool
}

// NewHeader creates a detached node with default spans.
func NewHeader(field, name string, dataType DataType) *HeaderNode {
	return &HeaderNode{
		Field:      field,
		Name:       name,
		DataType:   dataType,
		RowSpan:    1,
		ColumnSpan: 1,
	}
}

// NewGroup creates a group node and attaches the given children in order.
func NewGroup(name string, children ...*HeaderNode) (*HeaderNode, error) {
	g := NewHeader("", name, String)
	for _, c := range children {
		if err := Attach(g, c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// IsGroup reports whether the node has children.
func (h *HeaderNode) IsGroup() bool {
	return len(h.Children) > 0
}

// DeepestLevel returns 1 for a leaf, otherwise 1 plus the deepest level of
// its children.
func (h *HeaderNode) DeepestLevel() int {
	if !h.IsGroup() {
		return 1
	}
	deepest := 0
	for _, c := range h.Children {
		if d := c.DeepestLevel(); d > deepest {
			deepest = d
		}
	}
	return 1 + deepest
}

// Walk visits h and its descendants depth first in child order.
// Returning false from fn stops the walk.
func (h *HeaderNode) Walk(fn func(*HeaderNode) bool) bool {
	if !fn(h) {
		return false
	}
	for _, c := range h.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Leaves returns the leaf nodes under h in left to right order.
func (h *HeaderNode) Leaves() []*HeaderNode {
	var leaves []*HeaderNode
	h.Walk(func(n *HeaderNode) bool {
		if !n.IsGroup() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Attach appends child to parent and updates the spans and indices of both.
//
// The parent's row span grows to cover the child's subtree, its column span
// is replaced by the first child's span and summed for the following ones,
// and the child is packed right after its previous sibling. Row indices of
// the whole child subtree are rebased under the parent.
//
// Only parent and the child subtree are updated. Attaching into a node that
// is itself already attached leaves its ancestors' spans stale; Layout
// recomputes everything from the tree shape.
func Attach(parent, child *HeaderNode) error {
	if child.attached {
		return ErrAlreadyAttached
	}
	if parent == child {
		return ErrSelfAttach
	}
	if dup := findDuplicate(parent, child); dup != nil {
		return &DuplicateHeaderError{Field: dup.Field, Name: dup.Name}
	}

	if d := child.DeepestLevel() + 1; d > parent.RowSpan {
		parent.RowSpan = d
	}

	if len(parent.Children) == 0 {
		parent.ColumnSpan = child.ColumnSpan
		child.ColumnIndex = 0
	} else {
		parent.ColumnSpan += child.ColumnSpan
		prev := parent.Children[len(parent.Children)-1]
		child.ColumnIndex = prev.ColumnIndex + prev.ColumnSpan
	}

	child.rebaseRows(parent.RowIndex)
	child.attached = true
	parent.Children = append(parent.Children, child)
	return nil
}

func (h *HeaderNode) rebaseRows(parentRow int) {
	h.RowIndex = parentRow + 1
	for _, c := range h.Children {
		c.rebaseRows(h.RowIndex)
	}
}

// findDuplicate returns the first node of the child subtree that is already
// present in the parent subtree.
func findDuplicate(parent, child *HeaderNode) *HeaderNode {
	seen := make(map[headerKey]bool)
	parent.Walk(func(n *HeaderNode) bool {
		seen[keyOf(n)] = true
		return true
	})
	var dup *HeaderNode
	child.Walk(func(n *HeaderNode) bool {
		if seen[keyOf(n)] {
			dup = n
			return false
		}
		return true
	})
	return dup
}

// headerKey is the header identity: two nodes are the same header when
// both field and name match.
type headerKey struct {
	field string
	name  string
}

func keyOf(n *HeaderNode) headerKey {
	return headerKey{field: n.Field, name: n.Name}
}

// Forest is an ordered list of root headers rendered left to right.
type Forest []*HeaderNode

// Leaves returns every leaf of the forest in column order.
func (f Forest) Leaves() []*HeaderNode {
	var leaves []*HeaderNode
	for _, root := range f {
		leaves = append(leaves, root.Leaves()...)
	}
	return leaves
}
