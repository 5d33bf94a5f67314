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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/google/gridreport/core/rendering"
	"github.com/google/gridreport/core/report"
	"github.com/google/gridreport/core/server"
	"github.com/google/gridreport/datasources"
	"github.com/google/gridreport/demo"
)

// configFlag collects repeated -config key=value pairs.
type configFlag map[string]string

func (c configFlag) String() string {
	pairs := make([]string, 0, len(c))
	for k, v := range c {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (c configFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	c[k] = v
	return nil
}

func main() {
	var (
		reportName    = flag.String("report", "sample", "demo report to render (sample or sales)")
		format        = flag.String("format", "text", "output format: xlsx, html or text")
		out           = flag.String("out", "", "output file (default stdout)")
		source        = flag.String("source", "", "load records with this loader instead of the demo rows: csv, json, sql or mongo")
		group         = flag.String("group", "", "comma separated group fields, overriding the report's")
		ignoreMissing = flag.Bool("ignore-missing", false, "drop record fields that have no column instead of failing")
		serve         = flag.String("serve", "", "serve reports over HTTP on this address instead of rendering once")
		config        = configFlag{}
	)
	flag.Var(config, "config", "loader config key=value, repeatable (e.g. -config file_path=rows.csv)")
	flag.Parse()

	if *serve != "" {
		serveReports(*serve)
		return
	}

	specs, err := demo.Specs()
	if err != nil {
		log.Fatalf("Failed to build demo reports: %v", err)
	}
	spec, ok := specs[*reportName]
	if !ok {
		log.Fatalf("Unknown report %q", *reportName)
	}

	if *ignoreMissing {
		spec.SetPolicy(report.IgnoreMissingColumns)
	}
	if *group != "" {
		spec.SetGroupFields(strings.Split(*group, ","))
	}

	if *source != "" {
		cache := datasources.NewConnectionCache()
		defer cache.Close(context.Background())

		manager := datasources.NewDefaultManager()
		manager.RegisterLoader(datasources.NewMongoLoader(cache))
		manager.RegisterLoader(datasources.NewSQLLoader())

		// The column map types the loaded values, so lay out the headers first.
		plan, err := spec.Build()
		if err != nil {
			log.Fatalf("Failed to lay out headers: %v", err)
		}
		rows, err := manager.Load(context.Background(), *source, config, plan.Columns())
		if err != nil {
			log.Fatalf("Failed to load records: %v", err)
		}
		log.Printf("Loaded %d records from %s", len(rows), *source)
		spec.SetRecords(rows)
	}

	srv, err := server.NewServer(demo.Specs)
	if err != nil {
		log.Fatalf("Failed to create sinks: %v", err)
	}
	sink, ok := srv.Sink(*format)
	if !ok {
		log.Fatalf("Unknown format %q", *format)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	job := rendering.Job{Spec: spec, Sink: sink, Out: w}
	if err := rendering.RenderAll(context.Background(), []rendering.Job{job}, 1); err != nil {
		log.Fatalf("Failed to render %s: %v", spec.Name, err)
	}
}

func serveReports(addr string) {
	srv, err := server.NewServer(demo.Specs)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	fmt.Printf("Server starting on http://%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, srv.Handler()))
}
