// Package types provides type definitions for structured data used throughout the applicant scorer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Years is a years-of-experience value coming from loosely typed job and
// application records. Absent, null and empty values mean zero. Values that
// are not finite non-negative numbers are kept as Invalid instead of failing
// decoding, so one bad field never aborts a scoring call.
type Years struct {
	Value   float64
	Invalid bool
}

// YearsOf returns a valid Years holding v. Negative, NaN and infinite values are invalid.
func YearsOf(v float64) Years {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Years{Invalid: true}
	}
	return Years{Value: v}
}

// ParseYears converts an arbitrary decoded value (number, numeric string, nil) into Years.
func ParseYears(v any) Years {
	switch t := v.(type) {
	case nil:
		return Years{}
	case float64:
		return YearsOf(t)
	case float32:
		return YearsOf(float64(t))
	case int:
		return YearsOf(float64(t))
	case int64:
		return YearsOf(float64(t))
	case json.Number:
		return ParseYears(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Years{}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Years{Invalid: true}
		}
		return YearsOf(f)
	default:
		return Years{Invalid: true}
	}
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (y *Years) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode years value: %w", err)
	}
	*y = ParseYears(raw)
	return nil
}

// MarshalJSON writes valid values as numbers and invalid values as null.
func (y Years) MarshalJSON() ([]byte, error) {
	if y.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(y.Value)
}

// String renders the value for logs and verbose output.
func (y Years) String() string {
	if y.Invalid {
		return "invalid"
	}
	return strconv.FormatFloat(y.Value, 'f', -1, 64)
}
