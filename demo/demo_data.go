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

// Package demo builds sample reports used by the binary and the tests.
package demo

import (
	"fmt"
	"time"

	"github.com/google/gridreport/core/headers"
	"github.com/google/gridreport/core/records"
	"github.com/google/gridreport/core/report"
)

// CreateSampleForest builds h{sh{ssh, ssh2}, sh2, sh3} and j{sj, sj2}.
func CreateSampleForest() (headers.Forest, error) {
	node := func(field string) *headers.HeaderNode {
		return headers.NewHeader(field, field, headers.Integer)
	}
	h, sh, ssh, ssh2, sh2, sh3 := node("h"), node("sh"), node("ssh"), node("ssh2"), node("sh2"), node("sh3")
	j, sj, sj2 := node("j"), node("sj"), node("sj2")
	sj.DataType = headers.String

	steps := []struct{ parent, child *headers.HeaderNode }{
		{sh, ssh}, {sh, ssh2},
		{h, sh}, {h, sh2}, {h, sh3},
		{j, sj}, {j, sj2},
	}
	for _, s := range steps {
		if err := headers.Attach(s.parent, s.child); err != nil {
			return nil, err
		}
	}
	return headers.Forest{h, j}, nil
}

// CreateSampleRecords returns five rows whose (ssh, ssh2) pairs are
// (0,10), (1,9), (1,12), (1,9), (0,14).
func CreateSampleRecords() []records.Record {
	rows := make([]records.Record, 0, 5)
	for i := 0; i < 5; i++ {
		r := records.Record{
			"sj":  fmt.Sprintf("sj%d", i),
			"sj2": i,
			"sh2": i,
			"sh3": i,
		}
		if i == 0 || i == 4 {
			r["ssh"] = 0
		} else {
			r["ssh"] = 1
		}
		if i == 1 || i == 3 {
			r["ssh2"] = 9
		} else {
			r["ssh2"] = i + 10
		}
		rows = append(rows, r)
	}
	return rows
}

// CreateSampleSpec returns the sample report grouped by ssh then ssh2.
func CreateSampleSpec() (*report.Spec, error) {
	forest, err := CreateSampleForest()
	if err != nil {
		return nil, err
	}
	s := report.New("sample", forest)
	s.SetGroupFields([]string{"ssh", "ssh2"})
	s.SetRecords(CreateSampleRecords())
	return s, nil
}

// CreateSalesForest builds a two level header with wide rune names:
// 地区{大区, 城市}, 日期, 销售{数量, 金额}.
func CreateSalesForest() (headers.Forest, error) {
	where, err := headers.NewGroup("地区",
		headers.NewHeader("region", "大区", headers.String),
		headers.NewHeader("city", "城市", headers.String),
	)
	if err != nil {
		return nil, err
	}
	sales, err := headers.NewGroup("销售",
		headers.NewHeader("quantity", "数量", headers.Integer),
		headers.NewHeader("amount", "金额", headers.Double),
	)
	if err != nil {
		return nil, err
	}
	return headers.Forest{where, headers.NewHeader("day", "日期", headers.Date), sales}, nil
}

// CreateSalesRecords returns daily sales rows in arrival order.
func CreateSalesRecords() []records.Record {
	day := func(d int) time.Time { return time.Date(2017, time.March, d, 0, 0, 0, 0, time.UTC) }
	return []records.Record{
		{"region": "华东", "city": "上海", "day": day(8), "quantity": 12, "amount": 360.5},
		{"region": "华北", "city": "北京", "day": day(8), "quantity": 7, "amount": 210.0},
		{"region": "华东", "city": "杭州", "day": day(9), "quantity": 3, "amount": 95.25},
		{"region": "华东", "city": "上海", "day": day(9), "quantity": 9, "amount": 270.0},
		{"region": "华北", "city": "天津", "day": day(8), "quantity": 4, "amount": 120.0},
		{"region": "华北", "city": "北京", "day": day(10), "quantity": 5, "amount": 150.0},
	}
}

// CreateSalesSpec returns the sales report grouped by region, city and day.
func CreateSalesSpec() (*report.Spec, error) {
	forest, err := CreateSalesForest()
	if err != nil {
		return nil, err
	}
	s := report.New("sales", forest)
	s.SetGroupFields([]string{"region", "city", "day"})
	s.SetRecords(CreateSalesRecords())
	return s, nil
}

// Specs returns every demo report by name.
func Specs() (map[string]*report.Spec, error) {
	out := make(map[string]*report.Spec)
	for name, build := range map[string]func() (*report.Spec, error){
		"sample": CreateSampleSpec,
		"sales":  CreateSalesSpec,
	} {
		s, err := build()
		if err != nil {
			return nil, fmt.Errorf("demo %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}
