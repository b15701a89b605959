package gigdraft

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// NumberInput is a numeric form field kept exactly as typed. It decodes from a
// JSON string or number and is only coerced when the draft is validated or
// normalized. An empty input counts as zero.
type NumberInput string

func (n *NumberInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberInput(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumberInput(num.String())
	return nil
}

// NumberInputFrom converts a loosely typed form value. Booleans, slices and maps
// are rejected.
func NumberInputFrom(v any) (NumberInput, bool) {
	switch v.(type) {
	case nil:
		return "", true
	case bool, []any, map[string]any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return NumberInput(s), true
}

// Limits of the persisted columns. Day and revision counts are stored as
// integers and amounts as numeric(14,2).
var (
	maxCount  = decimal.NewFromInt(math.MaxInt32)
	maxAmount = decimal.RequireFromString("999999999999.99")
)

// maxExponent bounds the exponent of scientific input so comparisons stay cheap.
const maxExponent = 64

// Decimal parses the input. ok is false for text that is not a plain or
// scientific decimal number.
func (n NumberInput) Decimal() (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// Int truncates the parsed value toward zero. ok is false when the result does
// not fit an integer column.
func (n NumberInput) Int() (int, bool) {
	d, ok := n.Decimal()
	if !ok {
		return 0, false
	}
	d = d.Truncate(0)
	if d.Abs().GreaterThan(maxCount) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Amount rounds the parsed value to cents. ok is false when it does not fit the
// money column.
func (n NumberInput) Amount() (decimal.Decimal, bool) {
	d, ok := n.Decimal()
	if !ok {
		return decimal.Zero, false
	}
	d = d.Round(2)
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// AtLeast reports whether the input parses to a value >= min.
func (n NumberInput) AtLeast(min int64) bool {
	d, ok := n.Decimal()
	return ok && d.GreaterThanOrEqual(decimal.NewFromInt(min))
}

// Between reports whether the input parses to a value in [lo, hi].
func (n NumberInput) Between(lo, hi int64) bool {
	d, ok := n.Decimal()
	return ok && d.GreaterThanOrEqual(decimal.NewFromInt(lo)) && d.LessThanOrEqual(decimal.NewFromInt(hi))
}
