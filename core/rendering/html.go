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
	"embed"
	"io"

	"github.com/google/gridreport/core/report"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// htmlTable is the template view of a plan: rows of cells starting on each
// row. Cells covered by a span are left out.
type htmlTable struct {
	Header [][]gridCell
	Body   [][]gridCell
}

// HTMLSink renders a plan as an HTML table using rowspan and colspan for
// merged cells.
type HTMLSink struct {
	tableTemplate *template.Template
}

// NewHTMLSink creates a new HTML sink
func NewHTMLSink() (*HTMLSink, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	tableTemplate, err := template.New("report.html").ParseFS(trustedFS, "templates/report.html")
	if err != nil {
		return nil, err
	}

	return &HTMLSink{tableTemplate: tableTemplate}, nil
}

// Render writes the plan's table to w
func (s *HTMLSink) Render(w io.Writer, p *report.Plan) error {
	g := newGrid(p)
	vm := htmlTable{}
	for r := 0; r < g.rows; r++ {
		cells := g.rowCells(r)
		if r < p.BodyStart {
			vm.Header = append(vm.Header, cells)
		} else {
			vm.Body = append(vm.Body, cells)
		}
	}
	return s.tableTemplate.Execute(w, vm)
}
