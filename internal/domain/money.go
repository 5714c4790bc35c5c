package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a price value cannot be normalized into
// a non-negative monetary amount. Callers must reject the offending input;
// an unparseable price is never treated as zero.
var ErrInvalidAmount = &Error{Code: EINVALID, Message: "Invalid monetary amount"}

// currencyGlyphs are stripped before parsing a formatted price string.
// The catalog delivers prices either as numbers or as display strings
// such as "₹1,299.00".
var currencyGlyphs = []string{"₹", "Rs.", "Rs", "$", "€", "£"}

// RegisterCurrencyGlyph adds a configured glyph to the set stripped during
// parsing. Called once at startup, before any request traffic.
func RegisterCurrencyGlyph(glyph string) {
	if glyph == "" {
		return
	}
	for _, g := range currencyGlyphs {
		if g == glyph {
			return
		}
	}
	currencyGlyphs = append([]string{glyph}, currencyGlyphs...)
}

// Amount is the canonical monetary type used across cart, pricing and
// orders. It wraps an arbitrary-precision decimal so accumulation never
// compounds rounding error; rounding to two places happens only at
// presentation (Display) time.
type Amount struct {
	dec decimal.Decimal
}

// ZeroAmount is the zero Amount.
var ZeroAmount = Amount{}

// NewAmount creates an Amount from an already-normalized decimal string,
// e.g. policy constants from configuration. Panics on malformed input, so
// it is only for trusted literals; use ParseAmount for external data.
func NewAmount(s string) Amount {
	return Amount{dec: decimal.RequireFromString(s)}
}

// ParseAmount normalizes a price field into an Amount.
//
// Numeric values are taken as-is. Strings are cleaned of a known currency
// glyph, whitespace and digit-group separators, then parsed as a decimal
// number. Anything that does not yield a finite non-negative amount fails
// with ErrInvalidAmount.
func ParseAmount(v any) (Amount, error) {
	const op = "money.parse"

	switch value := v.(type) {
	case Amount:
		return value, nil
	case decimal.Decimal:
		return checked(Amount{dec: value}, op)
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ZeroAmount, WrapError(ErrInvalidAmount, EINVALID, op, ErrInvalidAmount.Message)
		}
		return checked(Amount{dec: decimal.NewFromFloat(value)}, op)
	case float32:
		return ParseAmount(float64(value))
	case int:
		return checked(Amount{dec: decimal.NewFromInt(int64(value))}, op)
	case int64:
		return checked(Amount{dec: decimal.NewFromInt(value)}, op)
	case string:
		return parseAmountString(value)
	default:
		return ZeroAmount, WrapError(ErrInvalidAmount, EINVALID, op, ErrInvalidAmount.Message)
	}
}

func parseAmountString(raw string) (Amount, error) {
	const op = "money.parse"

	cleaned := strings.TrimSpace(raw)
	for _, glyph := range currencyGlyphs {
		cleaned = strings.ReplaceAll(cleaned, glyph, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ZeroAmount, WrapError(err, EINVALID, op, ErrInvalidAmount.Message)
	}

	return checked(Amount{dec: dec}, op)
}

func checked(a Amount, op string) (Amount, error) {
	if a.dec.IsNegative() {
		return ZeroAmount, WrapError(ErrInvalidAmount, EINVALID, op, ErrInvalidAmount.Message)
	}
	return a, nil
}

// Add returns a + b without rounding.
func (a Amount) Add(b Amount) Amount {
	return Amount{dec: a.dec.Add(b.dec)}
}

// MulInt returns a × n, used for line totals (unit price × quantity).
func (a Amount) MulInt(n int) Amount {
	return Amount{dec: a.dec.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRate returns a × rate, used for percentage tax.
func (a Amount) MulRate(rate float64) Amount {
	return Amount{dec: a.dec.Mul(decimal.NewFromFloat(rate))}
}

// Equal reports exact equality of the underlying decimals.
func (a Amount) Equal(b Amount) bool {
	return a.dec.Equal(b.dec)
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

// Float64 returns the amount as a float, for metrics observation only.
func (a Amount) Float64() float64 {
	f, _ := a.dec.Float64()
	return f
}

// String returns the full-precision decimal representation.
func (a Amount) String() string {
	return a.dec.String()
}

// Display returns the amount rounded to two decimal places. This is the
// only point where monetary rounding happens.
func (a Amount) Display() string {
	return a.dec.StringFixed(2)
}

// MarshalJSON encodes the amount as a bare JSON number at full precision,
// so a persisted cart or ledger round-trips without loss.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a currency-formatted
// string, funneling both through ParseAmount. This is the single
// normalization boundary for prices entering the system.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		return nil
	}

	parsed, err := parseAmountString(raw)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
