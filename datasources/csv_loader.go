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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
)

// CSVLoader implements RecordLoader for CSV files.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true"). Without a header
//     row, fields are taken from the column map in column order.
//   - delimiter: Field delimiter (default: ",")
type CSVLoader struct{}

// NewCSVLoader creates a new CSV loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// SourceType returns "csv".
func (l *CSVLoader) SourceType() string {
	return "csv"
}

// Load reads the file named by file_path.
func (l *CSVLoader) Load(ctx context.Context, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return l.Read(ctx, file, config, columns)
}

// Read parses CSV from r using the same config keys as Load, except
// file_path.
func (l *CSVLoader) Read(ctx context.Context, r io.Reader, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	reader := csv.NewReader(r)
	if d := config["delimiter"]; d != "" {
		reader.Comma = rune(d[0])
	}
	reader.FieldsPerRecord = -1

	var fields []string
	if config["has_header"] == "false" {
		if columns == nil {
			return nil, fmt.Errorf("has_header=false requires a column map")
		}
		fields = columns.Fields()
	} else {
		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV file is empty")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV header: %w", err)
		}
		fields = header
	}

	var out []records.Record
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(row) > len(fields) {
			return nil, fmt.Errorf("CSV row %d has %d values for %d fields", line, len(row), len(fields))
		}

		rec := make(records.Record, len(fields))
		for i, f := range fields {
			if i < len(row) {
				rec[f] = row[i]
			} else {
				rec[f] = nil
			}
		}
		if err := convertRecord(rec, columns); err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
