package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYears(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		value   float64
		invalid bool
	}{
		{name: "nil", input: nil, value: 0},
		{name: "float", input: 3.5, value: 3.5},
		{name: "int", input: 4, value: 4},
		{name: "numeric string", input: "2", value: 2},
		{name: "padded string", input: " 1.5 ", value: 1.5},
		{name: "empty string", input: "", value: 0},
		{name: "json number", input: json.Number("7"), value: 7},
		{name: "word", input: "abc", invalid: true},
		{name: "negative", input: -1.0, invalid: true},
		{name: "negative string", input: "-3", invalid: true},
		{name: "nan", input: math.NaN(), invalid: true},
		{name: "infinity string", input: "Inf", invalid: true},
		{name: "bool", input: true, invalid: true},
		{name: "slice", input: []any{1}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseYears(tt.input)
			assert.Equal(t, tt.invalid, got.Invalid)
			if !tt.invalid {
				assert.Equal(t, tt.value, got.Value)
			}
		})
	}
}

func TestYears_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		value   float64
		invalid bool
	}{
		{raw: `5`, value: 5},
		{raw: `"5"`, value: 5},
		{raw: `null`, value: 0},
		{raw: `"abc"`, invalid: true},
		{raw: `-2`, invalid: true},
		{raw: `false`, invalid: true},
		{raw: `{"years": 3}`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var y Years
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &y))
			assert.Equal(t, tt.invalid, y.Invalid)
			assert.Equal(t, tt.value, y.Value)
		})
	}
}

func TestYears_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(YearsOf(2.5))
	require.NoError(t, err)
	assert.JSONEq(t, `2.5`, string(data))

	data, err = json.Marshal(Years{Invalid: true})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestYears_String(t *testing.T) {
	assert.Equal(t, "3", YearsOf(3).String())
	assert.Equal(t, "invalid", ParseYears("x").String())
}
