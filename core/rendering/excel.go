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

package rendering

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/report"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name used when ExcelSink.Sheet is empty.
const DefaultSheet = "Report"

// excelDateFormat is the builtin yyyy-mm-dd number format.
const excelDateFormat = 14

// ExcelSink renders a plan into a single worksheet xlsx workbook.
type ExcelSink struct {
	Sheet string
}

// NewExcelSink returns a sink writing into a sheet named sheet.
func NewExcelSink(sheet string) *ExcelSink {
	return &ExcelSink{Sheet: sheet}
}

func (s *ExcelSink) sheetName() string {
	if s.Sheet == "" {
		return DefaultSheet
	}
	return s.Sheet
}

// Render writes the workbook to w.
func (s *ExcelSink) Render(w io.Writer, p *report.Plan) error {
	f, err := s.Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type excelStyles struct {
	header int
	date   int
	merged int
	// mergedDate combines merged and date.
	mergedDate int
}

func newExcelStyles(f *excelize.File) (*excelStyles, error) {
	var st excelStyles
	var err error
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: center}); err != nil {
		return nil, err
	}
	if st.date, err = f.NewStyle(&excelize.Style{NumFmt: excelDateFormat}); err != nil {
		return nil, err
	}
	if st.merged, err = f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Vertical: "center"}}); err != nil {
		return nil, err
	}
	if st.mergedDate, err = f.NewStyle(&excelize.Style{NumFmt: excelDateFormat, Alignment: &excelize.Alignment{Vertical: "center"}}); err != nil {
		return nil, err
	}
	return &st, nil
}

// Workbook builds the workbook in memory. The caller owns the returned file
// and must Close it.
func (s *ExcelSink) Workbook(p *report.Plan) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := s.sheetName()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	if err := s.fill(f, sheet, p); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (s *ExcelSink) fill(f *excelize.File, sheet string, p *report.Plan) error {
	styles, err := newExcelStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	g := newGrid(p)
	for _, c := range g.cells {
		topLeft, err := excelize.CoordinatesToCellName(c.Column+1, c.Row+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(c.Column+c.ColumnSpan, c.Row+c.RowSpan)
		if err != nil {
			return err
		}

		if c.Value != nil {
			if err := f.SetCellValue(sheet, topLeft, excelValue(c.Value, c.DataType)); err != nil {
				return fmt.Errorf("cell %s: %w", topLeft, err)
			}
		}
		if topLeft != bottomRight {
			if err := f.MergeCell(sheet, topLeft, bottomRight); err != nil {
				return fmt.Errorf("merge %s:%s: %w", topLeft, bottomRight, err)
			}
		}

		style := 0
		_, isTime := c.Value.(time.Time)
		switch {
		case c.Header:
			style = styles.header
		case isTime && c.Merged:
			style = styles.mergedDate
		case isTime:
			style = styles.date
		case c.Merged:
			style = styles.merged
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, topLeft, bottomRight, style); err != nil {
				return fmt.Errorf("style %s: %w", topLeft, err)
			}
		}
	}
	return nil
}

// excelValue picks the cell representation for a value of a column type.
// String columns always get text so numbers are not reinterpreted.
func excelValue(v any, dt headers.DataType) any {
	switch dt {
	case headers.String:
		return Format(v, dt)
	case headers.Integer:
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			return int64(f)
		}
	}
	return v
}
