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

package records

import (
	"math"
	"strings"
	"time"
)

type valueKind int

const (
	kindUnknown valueKind = iota
	kindString
	kindSigned
	kindUnsigned
	kindFloat
	kindBool
	kindTime
	kindDuration
)

// Compare orders two values. nil sorts before every other value and equals
// nil. Integers and floats of any width compare numerically with each
// other. Values of different kinds return an *IncomparableValueError.
func Compare(a, b any) (int, error) {
	if a == nil && b == nil {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	ka, kb := kindOf(a), kindOf(b)
	if ka == kindUnknown || kb == kindUnknown {
		return 0, &IncomparableValueError{Left: a, Right: b}
	}
	if isNumeric(ka) && isNumeric(kb) {
		return compareNumbers(a, ka, b, kb), nil
	}
	if ka != kb {
		return 0, &IncomparableValueError{Left: a, Right: b}
	}

	switch ka {
	case kindString:
		return strings.Compare(a.(string), b.(string)), nil
	case kindBool:
		return compareBools(a.(bool), b.(bool)), nil
	case kindTime:
		return compareTimes(a.(time.Time), b.(time.Time)), nil
	case kindDuration:
		return compareDurations(a.(time.Duration), b.(time.Duration)), nil
	default:
		return 0, &IncomparableValueError{Left: a, Right: b}
	}
}

// Equal reports whether two values are equal under Compare. Incomparable
// values are unequal.
func Equal(a, b any) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}

func kindOf(v any) valueKind {
	switch v.(type) {
	case string:
		return kindString
	case time.Duration:
		return kindDuration
	case int, int8, int16, int32, int64:
		return kindSigned
	case uint, uint8, uint16, uint32, uint64:
		return kindUnsigned
	case float32, float64:
		return kindFloat
	case bool:
		return kindBool
	case time.Time:
		return kindTime
	default:
		return kindUnknown
	}
}

func isNumeric(k valueKind) bool {
	return k == kindSigned || k == kindUnsigned || k == kindFloat
}

func compareNumbers(a any, ka valueKind, b any, kb valueKind) int {
	switch {
	case ka == kindFloat || kb == kindFloat:
		return compareFloat64s(toFloat64(a), toFloat64(b))
	case ka == kindSigned && kb == kindSigned:
		return compareInt64s(toInt64(a), toInt64(b))
	case ka == kindUnsigned && kb == kindUnsigned:
		return compareUint64s(toUint64(a), toUint64(b))
	case ka == kindSigned:
		x := toInt64(a)
		if x < 0 {
			return -1
		}
		return compareUint64s(uint64(x), toUint64(b))
	default:
		y := toInt64(b)
		if y < 0 {
			return 1
		}
		return compareUint64s(toUint64(a), uint64(y))
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	}
	return 0
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	}
	return 0
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	switch kindOf(v) {
	case kindSigned:
		return float64(toInt64(v))
	case kindUnsigned:
		return float64(toUint64(v))
	}
	return 0
}

func compareInt64s(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func compareUint64s(a, b uint64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareTimes compares two time.Time values
func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// compareDurations compares two time.Duration values
func compareDurations(a, b time.Duration) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
