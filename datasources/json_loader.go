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
	"fmt"
	"os"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// JSONLoader implements RecordLoader for a JSON array of objects.
// Numbers load as float64 and are narrowed by the column map.
//
// Required config keys:
//   - file_path: Path to the JSON file
type JSONLoader struct{}

// NewJSONLoader creates a new JSON loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// SourceType returns "json".
func (l *JSONLoader) SourceType() string {
	return "json"
}

// Load reads the file named by file_path.
func (l *JSONLoader) Load(ctx context.Context, config map[string]string, columns *headers.ColumnMap) ([]records.Record, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return l.Parse(ctx, data, columns)
}

// Parse decodes a JSON array of objects into records.
func (l *JSONLoader) Parse(ctx context.Context, data []byte, columns *headers.ColumnMap) ([]records.Record, error) {
	list := &structpb.ListValue{}
	if err := protojson.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	out := make([]records.Record, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obj := v.GetStructValue()
		if obj == nil {
			return nil, fmt.Errorf("JSON element %d is not an object", i)
		}
		rec := records.Record(obj.AsMap())
		if err := convertRecord(rec, columns); err != nil {
			return nil, fmt.Errorf("JSON element %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
