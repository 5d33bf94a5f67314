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
	"fmt"
)

var (
	// ErrAlreadyAttached is returned when a node that already has a parent
	// is attached again.
	ErrAlreadyAttached = errors.New("header already attached to a parent")

	// ErrSelfAttach is returned when a node is attached to itself.
	ErrSelfAttach = errors.New("header cannot be attached to itself")
)

// DuplicateHeaderError reports two headers sharing the same field and name,
// or two leaves claiming the same field.
type DuplicateHeaderError struct {
	Field string
	Name  string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("duplicate header (field %q, name %q)", e.Field, e.Name)
}

// MissingFieldError reports a leaf header without a field identifier.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("leaf header %q has no field", e.Name)
}
