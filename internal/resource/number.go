package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number decodes a JSON number that the backend may also send as a string
// ("10.50") or null. Blank and null decode to zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*n = 0
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("number: %w", err)
		}
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if text == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("number: %q: %w", text, err)
	}
	*n = Number(v)
	return nil
}

// Float64 returns the value as float64.
func (n Number) Float64() float64 { return float64(n) }

// Decimal returns the value as a decimal without rounding. Callers round
// the final amount.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(n))
}

// String prints the value with two decimals.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', 2, 64)
}
