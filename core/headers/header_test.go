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

import (
	"errors"
	"testing"
)

// buildSampleForest builds h{sh{ssh, ssh2}, sh2, sh3} and j{sj, sj2}.
func buildSampleForest(t *testing.T) (Forest, map[string]*HeaderNode) {
	t.Helper()
	nodes := make(map[string]*HeaderNode)
	for _, name := range []string{"h", "sh", "ssh", "ssh2", "sh2", "sh3", "j", "sj", "sj2"} {
		nodes[name] = NewHeader(name, name, Integer)
	}
	attach := func(parent string, children ...string) {
		for _, c := range children {
			if err := Attach(nodes[parent], nodes[c]); err != nil {
				t.Fatalf("Attach(%s, %s) failed: %v", parent, c, err)
			}
		}
	}
	attach("sh", "ssh", "ssh2")
	attach("h", "sh", "sh2", "sh3")
	attach("j", "sj", "sj2")
	return Forest{nodes["h"], nodes["j"]}, nodes
}

func TestAttachSpans(t *testing.T) {
	_, nodes := buildSampleForest(t)

	tests := []struct {
		name        string
		rowIndex    int
		columnIndex int
		rowSpan     int
		columnSpan  int
	}{
		{"h", 0, 0, 3, 4},
		{"sh", 1, 0, 2, 2},
		{"ssh", 2, 0, 1, 1},
		{"ssh2", 2, 1, 1, 1},
		{"sh2", 1, 2, 1, 1},
		{"sh3", 1, 3, 1, 1},
		{"j", 0, 0, 2, 2},
		{"sj", 1, 0, 1, 1},
		{"sj2", 1, 1, 1, 1},
	}

	for _, tt := range tests {
		n := nodes[tt.name]
		if n.RowIndex != tt.rowIndex || n.ColumnIndex != tt.columnIndex {
			t.Errorf("%s: position = (%d, %d), want (%d, %d)", tt.name, n.RowIndex, n.ColumnIndex, tt.rowIndex, tt.columnIndex)
		}
		if n.RowSpan != tt.rowSpan || n.ColumnSpan != tt.columnSpan {
			t.Errorf("%s: spans = (%d, %d), want (%d, %d)", tt.name, n.RowSpan, n.ColumnSpan, tt.rowSpan, tt.columnSpan)
		}
	}
}

func TestAttachPacksSiblings(t *testing.T) {
	parent := NewHeader("p", "p", String)
	widths := []int{1, 3, 2, 1}
	for i, w := range widths {
		child := NewHeader("", string(rune('a'+i)), String)
		for k := 0; k < w; k++ {
			leaf := NewHeader(string(rune('a'+i))+string(rune('0'+k)), "leaf", String)
			if err := Attach(child, leaf); err != nil {
				t.Fatalf("Attach leaf failed: %v", err)
			}
		}
		if err := Attach(parent, child); err != nil {
			t.Fatalf("Attach child failed: %v", err)
		}
	}

	running := 0
	for i, c := range parent.Children {
		if c.ColumnIndex != running {
			t.Errorf("child %d: ColumnIndex = %d, want %d", i, c.ColumnIndex, running)
		}
		running += c.ColumnSpan
	}
	if parent.ColumnSpan != running {
		t.Errorf("parent ColumnSpan = %d, want %d", parent.ColumnSpan, running)
	}
}

func TestAttachErrors(t *testing.T) {
	t.Run("already attached", func(t *testing.T) {
		a := NewHeader("a", "A", String)
		b := NewHeader("b", "B", String)
		leaf := NewHeader("x", "X", String)
		if err := Attach(a, leaf); err != nil {
			t.Fatalf("first Attach failed: %v", err)
		}
		if err := Attach(b, leaf); !errors.Is(err, ErrAlreadyAttached) {
			t.Errorf("second Attach error = %v, want ErrAlreadyAttached", err)
		}
	})

	t.Run("self", func(t *testing.T) {
		a := NewHeader("a", "A", String)
		if err := Attach(a, a); !errors.Is(err, ErrSelfAttach) {
			t.Errorf("Attach error = %v, want ErrSelfAttach", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		g := NewHeader("g", "G", String)
		if err := Attach(g, NewHeader("x", "X", String)); err != nil {
			t.Fatalf("Attach failed: %v", err)
		}
		err := Attach(g, NewHeader("x", "X", String))
		var dup *DuplicateHeaderError
		if !errors.As(err, &dup) {
			t.Fatalf("Attach error = %v, want DuplicateHeaderError", err)
		}
		if dup.Field != "x" || dup.Name != "X" {
			t.Errorf("duplicate = (%q, %q), want (x, X)", dup.Field, dup.Name)
		}
		if len(g.Children) != 1 || g.ColumnSpan != 1 {
			t.Errorf("rejected Attach modified parent: %d children, span %d", len(g.Children), g.ColumnSpan)
		}
	})
}

func TestDeepestLevel(t *testing.T) {
	forest, nodes := buildSampleForest(t)
	if got := nodes["ssh"].DeepestLevel(); got != 1 {
		t.Errorf("leaf DeepestLevel = %d, want 1", got)
	}
	if got := forest[0].DeepestLevel(); got != 3 {
		t.Errorf("h DeepestLevel = %d, want 3", got)
	}
	if got := forest[1].DeepestLevel(); got != 2 {
		t.Errorf("j DeepestLevel = %d, want 2", got)
	}
}

func TestNewGroup(t *testing.T) {
	g, err := NewGroup("Totals",
		NewHeader("count", "Count", Integer),
		NewHeader("sum", "Sum", Double),
	)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	if !g.IsGroup() || g.ColumnSpan != 2 || g.RowSpan != 2 {
		t.Errorf("group spans = (%d, %d), want (2, 2)", g.RowSpan, g.ColumnSpan)
	}

	if _, err := NewGroup("Bad", NewHeader("a", "A", String), NewHeader("a", "A", String)); err == nil {
		t.Error("NewGroup with duplicate children succeeded, want error")
	}
}
