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
	"errors"
	"sort"

	"github.com/google/gridreport/core/records"
)

// Comparator orders records by an ordered list of group fields. The first
// field that differs decides; nil values sort first.
type Comparator struct {
	Fields []string
}

// NewComparator returns a comparator over fields.
func NewComparator(fields []string) *Comparator {
	return &Comparator{Fields: fields}
}

// Compare returns negative if r1 sorts before r2, zero if they tie on every
// group field and positive otherwise.
func (c *Comparator) Compare(r1, r2 records.Record) (int, error) {
	for _, field := range c.Fields {
		cmp, err := records.Compare(r1.Get(field), r2.Get(field))
		if err != nil {
			var ie *records.IncomparableValueError
			if errors.As(err, &ie) {
				ie.Field = field
			}
			return 0, err
		}
		if cmp != 0 {
			return cmp, nil
		}
	}
	return 0, nil
}

// Sort returns a copy of rows stably sorted by fields. Fully tied rows keep
// their input order. The first comparison error aborts the sort.
func Sort(rows []records.Record, fields []string) ([]records.Record, error) {
	sorted := make([]records.Record, len(rows))
	copy(sorted, rows)
	if len(fields) == 0 || len(sorted) < 2 {
		return sorted, nil
	}

	c := NewComparator(fields)
	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		cmp, err := c.Compare(sorted[i], sorted[j])
		if err != nil {
			sortErr = err
			return false
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}
