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

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/report"
	"github.com/google/gridreport/demo"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(func() (map[string]*report.Spec, error) {
		specs, err := demo.Specs()
		if err != nil {
			return nil, err
		}
		broken := report.New("broken", headers.Forest{headers.NewHeader("a", "A", headers.String)})
		broken.SetGroupFields([]string{"missing"})
		specs["broken"] = broken
		return specs, nil
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s
}

func TestHandleReport(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		url         string
		status      int
		contentType string
		body        string
	}{
		{"/report?name=sample", http.StatusOK, "text/html; charset=utf-8", `rowspan="2"`},
		{"/report?name=sales&format=text", http.StatusOK, "text/plain; charset=utf-8", "华东"},
		{"/report?name=sample&format=xlsx", http.StatusOK, contentTypes["xlsx"], "PK"},
		{"/report", http.StatusBadRequest, "", "name parameter is required"},
		{"/report?name=sample&format=pdf", http.StatusBadRequest, "", "not supported"},
		{"/report?name=nope", http.StatusNotFound, "", "not found"},
		{"/report?name=broken", http.StatusUnprocessableEntity, "", "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("body does not contain %q", tt.body)
			}
		})
	}
}

func TestHandleIndex(t *testing.T) {
	h := newTestServer(t).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "name=sample") || !strings.Contains(rec.Body.String(), "name=sales") {
		t.Errorf("index = %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
