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

// Package server serves rendered reports over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/google/gridreport/core/rendering"
	"github.com/google/gridreport/core/report"
)

// SpecSource returns fresh report specs by name. It is called once per
// request so that concurrent requests never share a Spec.
type SpecSource func() (map[string]*report.Spec, error)

var contentTypes = map[string]string{
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"html": "text/html; charset=utf-8",
	"text": "text/plain; charset=utf-8",
}

// Server represents the application server with all its dependencies
type Server struct {
	specs SpecSource
	sinks map[string]rendering.GridSink
}

// NewServer creates a new server rendering the reports from specs
func NewServer(specs SpecSource) (*Server, error) {
	html, err := rendering.NewHTMLSink()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Server{
		specs: specs,
		sinks: map[string]rendering.GridSink{
			"html": html,
			"text": rendering.NewTextSink(),
			"xlsx": rendering.NewExcelSink(""),
		},
	}, nil
}

// Sink returns the sink registered for format.
func (s *Server) Sink(format string) (rendering.GridSink, bool) {
	sink, ok := s.sinks[format]
	return sink, ok
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/report", s.HandleReport)
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

// HandleReport renders one report: /report?name=sample&format=html
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name parameter is required", http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	sink, ok := s.sinks[format]
	if !ok {
		http.Error(w, fmt.Sprintf("Format '%s' not supported", format), http.StatusBadRequest)
		return
	}

	specs, err := s.specs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	spec, ok := specs[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Report '%s' not found", name), http.StatusNotFound)
		return
	}

	plan, err := spec.Build()
	if err != nil {
		// Definition errors are the report author's to fix
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	if format == "xlsx" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	}
	if err := sink.Render(w, plan); err != nil {
		// Log the error instead of trying to write an error response
		// since the sink may have already written to the response
		log.Printf("Report rendering error: %v", err)
	}
}

// HandleIndex lists the available reports as plain text.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	specs, err := s.specs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", contentTypes["text"])
	for _, name := range names {
		fmt.Fprintf(w, "/report?name=%s&format=html\n", name)
	}
}
