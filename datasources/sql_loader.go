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
	"fmt"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqlDrivers maps the driver config value to a registered database/sql
// driver name.
var sqlDrivers = map[string]string{
	"sqlite":   "sqlite",
	"mysql":    "mysql",
	"postgres": "postgres",
}

// SQLLoader implements RecordLoader for a SQL query.
//
// Required config keys:
//   - driver: One of "sqlite", "mysql" or "postgres"
//   - dsn: Data source name understood by the driver
//   - query: Read query; each result row becomes a record keyed by column name
//
// Optional config keys:
//   - timeout: Query timeout as a Go duration (default: "30s")
type SQLLoader struct{}

// NewSQLLoader creates a new SQL loader.
func NewSQLLoader() *SQLLoader {
	return &SQLLoader{}
}

// SourceType returns "sql".
func (l *SQLLoader) SourceType() string {
	return "sql"
}

// Load opens the database, runs the query and converts the rows.
func (l *SQLLoader) Load(ctx context.Context, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	driver, ok := sqlDrivers[config["driver"]]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", config["driver"])
	}
	dsn := config["dsn"]
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	query := config["query"]
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	timeout := 30 * time.Second
	if s := config["timeout"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", s, err)
		}
		timeout = d
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows, columns)
}

// scanRecords reads every remaining row. Byte slices are taken as text.
func scanRecords(rows *sql.Rows, columns *headers.ColumnMap) ([]records.Record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []records.Record
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out)+1, err)
		}

		r := make(records.Record, len(names))
		for i, name := range names {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			r[name] = v
		}
		if err := convertRecord(r, columns); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
