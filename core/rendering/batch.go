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
	"context"
	"fmt"
	"io"

	"github.com/google/gridreport/core/report"
	"golang.org/x/sync/errgroup"
)

// Job renders one spec through one sink.
type Job struct {
	Spec *report.Spec
	Sink GridSink
	Out  io.Writer
}

// RenderAll renders jobs concurrently with at most limit in flight; limit
// <= 0 means no limit. Every job must use a distinct Spec. The first
// failure cancels jobs that have not started yet.
func RenderAll(ctx context.Context, jobs []Job, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := job.Spec.Build()
			if err != nil {
				return err
			}
			if err := job.Sink.Render(job.Out, p); err != nil {
				return fmt.Errorf("render %q: %w", job.Spec.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
