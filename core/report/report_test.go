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

package report

import (
	"errors"
	"testing"

	"github.com/google/gridreport/core/grouping"
	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
)

func testForest(t *testing.T) headers.Forest {
	t.Helper()
	region := headers.NewHeader("region", "Region", headers.String)
	city := headers.NewHeader("city", "City", headers.String)
	where, err := headers.NewGroup("Where", region, city)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	return headers.Forest{where, headers.NewHeader("amount", "Amount", headers.Double)}
}

func testRecords() []records.Record {
	return []records.Record{
		{"region": "North", "city": "Oslo", "amount": 3.5},
		{"region": "South", "city": "Rome", "amount": 1.0},
		{"region": "North", "city": "Oslo", "amount": 2.0},
		{"region": "North", "city": "Bergen", "amount": 4.0},
	}
}

func TestBuild(t *testing.T) {
	s := New("sales", testForest(t))
	s.SetGroupFields([]string{"region", "city"})
	s.SetRecords(testRecords())

	p, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if p.BodyStart != 2 {
		t.Errorf("BodyStart = %d, want 2", p.BodyStart)
	}

	var got []string
	for _, r := range p.Rows {
		got = append(got, r.Get("city").(string))
	}
	want := []string{"Bergen", "Oslo", "Oslo", "Rome"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted cities = %v, want %v", got, want)
		}
	}

	byField := grouping.MergesByField(p.Merges)
	if m := byField["region"]; len(m) != 1 || m[0].FirstRow != 2 || m[0].LastRow != 4 || m[0].Column != 0 {
		t.Errorf("region merges = %+v, want rows 2..4 on column 0", m)
	}
	if m := byField["city"]; len(m) != 1 || m[0].FirstRow != 3 || m[0].LastRow != 4 || m[0].Column != 1 {
		t.Errorf("city merges = %+v, want rows 3..4 on column 1", m)
	}
}

func TestBuildCachesUntilInvalidated(t *testing.T) {
	s := New("sales", testForest(t))
	s.SetRecords(testRecords())

	p1, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	p2, _ := s.Build()
	if p1 != p2 {
		t.Error("Build did not reuse the cached plan")
	}

	s.SetGroupFields([]string{"region"})
	p3, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p3 == p1 {
		t.Error("SetGroupFields did not invalidate the plan")
	}
	if len(p3.Merges) != 1 {
		t.Errorf("merges = %+v, want one region merge", p3.Merges)
	}

	s.SetRecords(testRecords()[:1])
	p4, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(p4.Rows) != 1 || len(p4.Merges) != 0 {
		t.Errorf("plan after SetRecords = %d rows, %d merges", len(p4.Rows), len(p4.Merges))
	}
}

func TestBuildUnknownGroupField(t *testing.T) {
	s := New("sales", testForest(t))
	s.SetGroupFields([]string{"country"})

	_, err := s.Build()
	var unknown *grouping.UnknownGroupFieldError
	if !errors.As(err, &unknown) || unknown.Field != "country" {
		t.Errorf("Build error = %v, want UnknownGroupFieldError", err)
	}
}

func TestBuildGroupFieldMustBeLeaf(t *testing.T) {
	forest := headers.Forest{
		{Field: "g", Name: "Group", Children: []*headers.HeaderNode{{Field: "x", Name: "X"}}},
	}
	s := New("nested", forest)
	s.SetGroupFields([]string{"g"})

	_, err := s.Build()
	var unknown *grouping.UnknownGroupFieldError
	if !errors.As(err, &unknown) {
		t.Errorf("Build error = %v, want UnknownGroupFieldError", err)
	}
}

func TestBuildMissingColumnPolicy(t *testing.T) {
	rows := append(testRecords(), records.Record{"region": "East", "note": "late"})

	s := New("sales", testForest(t))
	s.SetRecords(rows)
	_, err := s.Build()
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Build error = %v, want MissingColumnError", err)
	}
	if missing.Row != 4 || missing.Field != "note" {
		t.Errorf("missing = %+v, want row 4 field note", missing)
	}

	s.SetPolicy(IgnoreMissingColumns)
	p, err := s.Build()
	if err != nil {
		t.Fatalf("Build with IgnoreMissingColumns failed: %v", err)
	}
	if len(p.Ignored) != 1 || p.Ignored[0] != "note" {
		t.Errorf("Ignored = %v, want [note]", p.Ignored)
	}
	if len(p.Rows) != 5 {
		t.Errorf("got %d rows, want 5", len(p.Rows))
	}
}

func TestBuildErrorsAreNotCached(t *testing.T) {
	s := New("sales", testForest(t))
	s.SetRecords([]records.Record{{"region": "a"}, {"region": 1}})
	s.SetGroupFields([]string{"region"})

	_, err := s.Build()
	var ie *records.IncomparableValueError
	if !errors.As(err, &ie) {
		t.Fatalf("Build error = %v, want IncomparableValueError", err)
	}

	s.SetRecords([]records.Record{{"region": "a"}, {"region": "b"}})
	if _, err := s.Build(); err != nil {
		t.Errorf("Build after fixing records failed: %v", err)
	}
}

func TestBuildDuplicateHeader(t *testing.T) {
	forest := headers.Forest{
		headers.NewHeader("a", "A", headers.String),
		headers.NewHeader("a", "A", headers.String),
	}
	_, err := New("dup", forest).Build()
	var dup *headers.DuplicateHeaderError
	if !errors.As(err, &dup) {
		t.Errorf("Build error = %v, want DuplicateHeaderError", err)
	}
}
