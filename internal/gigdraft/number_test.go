package gigdraft

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberInput_UnmarshalJSON(t *testing.T) {
	var v struct {
		A NumberInput `json:"a"`
		B NumberInput `json:"b"`
		C NumberInput `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"25000","b":3.5,"c":null}`), &v))
	assert.Equal(t, NumberInput("25000"), v.A)
	assert.Equal(t, NumberInput("3.5"), v.B)
	assert.Equal(t, NumberInput(""), v.C)
}

func TestNumberInput_Parse(t *testing.T) {
	tests := []struct {
		in      NumberInput
		want    string
		wantInt int
		ok      bool
	}{
		{"", "0", 0, true},
		{" 12 ", "12", 12, true},
		{"3.9", "3.9", 3, true},
		{"-2", "-2", -2, true},
		{"2.5e3", "2500", 2500, true},
		{"abc", "0", 0, false},
		{"NaN", "0", 0, false},
		{"Inf", "0", 0, false},
		{"0x1p4", "0", 0, false},
		{"1e-300", "0", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			d, ok := tt.in.Decimal()
			assert.Equal(t, tt.ok, ok)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), d.String())
			i, iok := tt.in.Int()
			assert.Equal(t, tt.ok, iok)
			assert.Equal(t, tt.wantInt, i)
		})
	}
}

func TestNumberInput_ColumnRanges(t *testing.T) {
	_, ok := NumberInput("2147483647").Int()
	assert.True(t, ok)
	_, ok = NumberInput("2147483648").Int()
	assert.False(t, ok)
	_, ok = NumberInput("1e300").Int()
	assert.False(t, ok)

	amt, ok := NumberInput("999999999999.99").Amount()
	assert.True(t, ok)
	assert.Equal(t, "999999999999.99", amt.String())
	_, ok = NumberInput("999999999999.995").Amount()
	assert.False(t, ok, "rounds past the column limit")
	_, ok = NumberInput("1e13").Amount()
	assert.False(t, ok)
}

func TestNumberInputFrom(t *testing.T) {
	n, ok := NumberInputFrom(float64(42))
	assert.True(t, ok)
	assert.Equal(t, NumberInput("42"), n)

	n, ok = NumberInputFrom(nil)
	assert.True(t, ok)
	assert.Equal(t, NumberInput(""), n)

	_, ok = NumberInputFrom(true)
	assert.False(t, ok)
}

func TestNumberInput_Bounds(t *testing.T) {
	assert.True(t, NumberInput("1").AtLeast(1))
	assert.False(t, NumberInput("0.99").AtLeast(1))
	assert.False(t, NumberInput("x").AtLeast(1))
	assert.True(t, NumberInput("10").Between(0, 10))
	assert.False(t, NumberInput("10.5").Between(0, 10))
}
