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

// Package datasources loads report records from files and databases.
// Values are converted to the data type of the leaf column they land in.
package datasources

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
)

// RecordLoader is the interface that all record loaders must implement.
type RecordLoader interface {
	// SourceType returns the type identifier used in config (e.g., "csv", "json", "mongo").
	SourceType() string

	// Load retrieves the records. columns, when not nil, types the values of
	// the fields it knows; other fields are loaded as found.
	Load(ctx context.Context, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error)
}

// Manager dispatches loads to registered loaders by source type.
type Manager struct {
	mu      sync.RWMutex
	loaders map[string]RecordLoader
}

// NewManager creates a manager with no loaders.
func NewManager() *Manager {
	return &Manager{loaders: make(map[string]RecordLoader)}
}

// NewDefaultManager creates a manager with the csv and json loaders.
func NewDefaultManager() *Manager {
	m := NewManager()
	m.RegisterLoader(NewCSVLoader())
	m.RegisterLoader(NewJSONLoader())
	return m
}

// RegisterLoader registers a loader for its source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader RecordLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SourceTypes returns the registered source types in sorted order.
func (m *Manager) SourceTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.loaders))
	for t := range m.loaders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Load loads records with the loader registered for sourceType.
func (m *Manager) Load(ctx context.Context, sourceType string, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	m.mu.RLock()
	loader, ok := m.loaders[sourceType]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no loader registered for source type %q", sourceType)
	}
	return loader.Load(ctx, config, columns)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// convertValue converts a loaded value to the column's data type. Text is
// parsed; integral floats become int64 in Integer columns. An empty text
// value in a non string column is nil.
func convertValue(v any, dt headers.DataType) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if dt == headers.String {
			return x, nil
		}
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		switch dt {
		case headers.Integer:
			return strconv.ParseInt(s, 10, 64)
		case headers.Double:
			return strconv.ParseFloat(s, 64)
		case headers.Date:
			return parseDate(s)
		}
	case float64:
		if dt == headers.Integer && x == float64(int64(x)) {
			return int64(x), nil
		}
	case int32:
		return int64(x), nil
	}
	return v, nil
}

// convertRecord converts every field of r known to columns in place.
func convertRecord(r records.Record, columns *headers.ColumnMap) error {
	if columns == nil {
		return nil
	}
	for field, v := range r {
		col, ok := columns.Lookup(field)
		if !ok {
			continue
		}
		cv, err := convertValue(v, col.DataType)
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		r[field] = cv
	}
	return nil
}
