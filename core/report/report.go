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

// Package report ties a header forest, group fields and records together
// and derives everything a grid sink needs to render them.
package report

import (
	"fmt"
	"log"

	"github.com/google/gridreport/core/grouping"
	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
)

// MissingColumnPolicy decides what happens to record fields that have no
// leaf column.
type MissingColumnPolicy int

const (
	// RejectMissingColumns fails Build with a *MissingColumnError.
	RejectMissingColumns MissingColumnPolicy = iota
	// IgnoreMissingColumns logs the field once and leaves it unrendered.
	IgnoreMissingColumns
)

// MissingColumnError reports a record field absent from the column map.
// Row is the record's position in the input, before sorting.
type MissingColumnError struct {
	Row   int
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("record %d: field %q has no column", e.Row, e.Field)
}

// Plan is the complete input of a grid sink.
type Plan struct {
	Layout *headers.Layout
	// Rows are the records in final sorted order.
	Rows []records.Record
	// Merges use absolute sheet rows; body row i is sheet row BodyStart+i.
	Merges    []grouping.Merge
	BodyStart int
	// Ignored lists record fields dropped under IgnoreMissingColumns.
	Ignored []string
}

// Columns returns the plan's column map.
func (p *Plan) Columns() *headers.ColumnMap {
	return p.Layout.Columns
}

// Spec is a report definition. It owns its forest, group fields and
// records; the plan derived from them is cached until one of them is
// replaced.
//
// A Spec must not be mutated while it is being built or rendered. Distinct
// Specs share nothing and can be rendered concurrently.
type Spec struct {
	Name   string
	Policy MissingColumnPolicy

	forest      headers.Forest
	groupFields []string
	records     []records.Record

	plan *Plan
}

// New returns a spec over the given header forest.
func New(name string, forest headers.Forest) *Spec {
	return &Spec{Name: name, forest: forest}
}

// Forest returns the header forest.
func (s *Spec) Forest() headers.Forest {
	return s.forest
}

// GroupFields returns the group fields in priority order.
func (s *Spec) GroupFields() []string {
	return s.groupFields
}

// Records returns the records as supplied, unsorted.
func (s *Spec) Records() []records.Record {
	return s.records
}

// SetHeaders replaces the header forest.
func (s *Spec) SetHeaders(forest headers.Forest) {
	s.forest = forest
	s.invalidate()
}

// SetGroupFields replaces the group fields.
func (s *Spec) SetGroupFields(fields []string) {
	s.groupFields = append([]string(nil), fields...)
	s.invalidate()
}

// SetRecords replaces the records.
func (s *Spec) SetRecords(rows []records.Record) {
	s.records = rows
	s.invalidate()
}

// SetPolicy changes the missing column policy.
func (s *Spec) SetPolicy(p MissingColumnPolicy) {
	s.Policy = p
	s.invalidate()
}

// Invalidate drops the cached plan. Call it after mutating the forest or
// records in place.
func (s *Spec) Invalidate() {
	s.invalidate()
}

func (s *Spec) invalidate() {
	s.plan = nil
}

// Build lays out the headers, validates group fields and records, sorts the
// records and plans the body merges. The result is cached; on failure
// nothing is cached.
func (s *Spec) Build() (*Plan, error) {
	if s.plan != nil {
		return s.plan, nil
	}

	layout, err := headers.NewLayout(s.forest)
	if err != nil {
		return nil, fmt.Errorf("report %q: %w", s.Name, err)
	}
	cm := layout.Columns

	for _, f := range s.groupFields {
		if !cm.Has(f) {
			return nil, fmt.Errorf("report %q: %w", s.Name, &grouping.UnknownGroupFieldError{Field: f})
		}
	}

	ignored, err := s.checkColumns(cm)
	if err != nil {
		return nil, fmt.Errorf("report %q: %w", s.Name, err)
	}

	rows, err := grouping.Sort(s.records, s.groupFields)
	if err != nil {
		return nil, fmt.Errorf("report %q: %w", s.Name, err)
	}

	merges, err := grouping.PlanMerges(rows, s.groupFields, cm, layout.HeaderDepth)
	if err != nil {
		return nil, fmt.Errorf("report %q: %w", s.Name, err)
	}

	s.plan = &Plan{
		Layout:    layout,
		Rows:      rows,
		Merges:    merges,
		BodyStart: layout.HeaderDepth,
		Ignored:   ignored,
	}
	return s.plan, nil
}

// checkColumns applies the missing column policy and returns the ignored
// fields in first-seen order.
func (s *Spec) checkColumns(cm *headers.ColumnMap) ([]string, error) {
	var ignored []string
	seen := make(map[string]bool)
	for i, r := range s.records {
		for _, f := range r.Fields() {
			if cm.Has(f) || seen[f] {
				continue
			}
			if s.Policy == RejectMissingColumns {
				return nil, &MissingColumnError{Row: i, Field: f}
			}
			seen[f] = true
			ignored = append(ignored, f)
			log.Printf("report %q: ignoring field %q, it has no column", s.Name, f)
		}
	}
	return ignored, nil
}
