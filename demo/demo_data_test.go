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

package demo

import (
	"testing"

	"github.com/google/gridreport/core/grouping"
)

func TestSampleSpecEndToEnd(t *testing.T) {
	s, err := CreateSampleSpec()
	if err != nil {
		t.Fatalf("CreateSampleSpec failed: %v", err)
	}
	p, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if p.Layout.HeaderDepth != 3 {
		t.Errorf("HeaderDepth = %d, want 3", p.Layout.HeaderDepth)
	}

	wantFields := []string{"ssh", "ssh2", "sh2", "sh3", "sj", "sj2"}
	for i, f := range p.Columns().Fields() {
		if f != wantFields[i] {
			t.Errorf("column %d = %q, want %q", i, f, wantFields[i])
		}
	}

	wantOrder := [][2]int{{0, 10}, {0, 14}, {1, 9}, {1, 9}, {1, 12}}
	for i, r := range p.Rows {
		got := [2]int{r.Get("ssh").(int), r.Get("ssh2").(int)}
		if got != wantOrder[i] {
			t.Errorf("row %d = %v, want %v", i, got, wantOrder[i])
		}
	}

	// Merges are absolute: body row 0 is sheet row 3.
	byField := grouping.MergesByField(p.Merges)
	want := map[string][][2]int{
		"ssh":  {{3, 4}, {5, 7}},
		"ssh2": {{5, 6}},
	}
	for field, ranges := range want {
		got := byField[field]
		if len(got) != len(ranges) {
			t.Errorf("%s merges = %+v, want %v", field, got, ranges)
			continue
		}
		for i, r := range ranges {
			if got[i].FirstRow != r[0] || got[i].LastRow != r[1] {
				t.Errorf("%s merge %d = %d..%d, want %d..%d", field, i, got[i].FirstRow, got[i].LastRow, r[0], r[1])
			}
		}
	}
}

func TestSpecsBuild(t *testing.T) {
	specs, err := Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	for name, s := range specs {
		if _, err := s.Build(); err != nil {
			t.Errorf("%s: Build failed: %v", name, err)
		}
	}
}
