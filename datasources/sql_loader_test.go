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

package datasources

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func createSalesDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "sales.db")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE sales (region TEXT, qty INTEGER, amount REAL, day TEXT)`,
		`INSERT INTO sales VALUES ('North', 3, 1.5, '2017-03-08')`,
		`INSERT INTO sales VALUES ('South', NULL, 2.25, '2017-03-09')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("Exec(%q) failed: %v", s, err)
		}
	}
	return dsn
}

func TestSQLLoaderSQLite(t *testing.T) {
	config := map[string]string{
		"driver": "sqlite",
		"dsn":    createSalesDB(t),
		"query":  "SELECT region, qty, amount, day FROM sales ORDER BY region",
	}

	m := NewDefaultManager()
	m.RegisterLoader(NewSQLLoader())
	rows, err := m.Load(context.Background(), "sql", config, testColumns(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if r := rows[0]; r.Get("region") != "North" || r.Get("qty") != int64(3) || r.Get("amount") != 1.5 {
		t.Errorf("row 0 = %v", r)
	}
	if day, ok := rows[0].Get("day").(time.Time); !ok || day.Day() != 8 {
		t.Errorf("row 0 day = %v", rows[0].Get("day"))
	}
	if rows[1].Get("qty") != nil {
		t.Errorf("null qty = %v, want nil", rows[1].Get("qty"))
	}
}

func TestSQLLoaderWithoutColumns(t *testing.T) {
	config := map[string]string{
		"driver": "sqlite",
		"dsn":    createSalesDB(t),
		"query":  "SELECT region, day FROM sales WHERE region = 'South'",
	}
	rows, err := NewSQLLoader().Load(context.Background(), config, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Get("day") != "2017-03-09" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSQLLoaderConfigErrors(t *testing.T) {
	l := NewSQLLoader()
	tests := []map[string]string{
		{},
		{"driver": "oracle", "dsn": "x", "query": "SELECT 1"},
		{"driver": "sqlite", "query": "SELECT 1"},
		{"driver": "sqlite", "dsn": "x"},
		{"driver": "sqlite", "dsn": "x", "query": "SELECT 1", "timeout": "soon"},
	}
	for _, config := range tests {
		if _, err := l.Load(context.Background(), config, nil); err == nil {
			t.Errorf("Load(%v) succeeded, want error", config)
		}
	}
}
