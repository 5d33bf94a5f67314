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

// Package records holds report rows and the value ordering used to group
// them.
package records

import (
	"fmt"
	"sort"
)

// Record is one report row: a mapping from field to a scalar value.
// Supported values are strings, integers, floats, bools, time.Time,
// time.Duration and nil.
type Record map[string]any

// Get returns the value of field. Absent fields and nil values are
// indistinguishable.
func (r Record) Get(field string) any {
	return r[field]
}

// Fields returns the record's fields in sorted order.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// IncomparableValueError reports two non-null values of one field that have
// no common ordering.
type IncomparableValueError struct {
	Field string
	Left  any
	Right any
}

func (e *IncomparableValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot compare %T(%v) with %T(%v)", e.Left, e.Left, e.Right, e.Right)
	}
	return fmt.Sprintf("field %q: cannot compare %T(%v) with %T(%v)", e.Field, e.Left, e.Left, e.Right, e.Right)
}
