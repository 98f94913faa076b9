/*
Package engine provides the value types shared by the rental rules engine.

PURPOSE:
  The allocation, lease and extenso packages compute billing figures from
  primitive inputs. This package holds the small set of types those inputs
  are expressed in, so that preconditions are checked ONCE when a value is
  built instead of inside every computation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money:   A non-negative amount of Brazilian reais
  - Percent: A non-negative percentage (10 means 10%)
  - KWh:     A non-negative meter reading or consumption in kilowatt-hours

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal, never float64 arithmetic
  2. Validation at construction: NewMoney/ParseMoney reject negatives
  3. Immutability: All methods return new values

USAGE:
  rent, err := engine.ParseMoney("1200.00")
  fee := engine.MustPercent("10")
  fine := rent.MulPercent(fee) // R$ 120.00

SEE ALSO:
  - time.go: Calendar dates
  - period.go: Date ranges
  - errors.go: Precondition errors
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Brazilian real, never negative
// =============================================================================

type Money struct {
	value decimal.Decimal
}

// NewMoney validates d and wraps it. Negative amounts are a precondition
// violation (refunds are not modeled).
func NewMoney(d decimal.Decimal) (Money, error) {
	if err := nonNegative("amount", d); err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// ParseMoney parses caller text such as "1200.50".
func ParseMoney(s string) (Money, error) {
	d, err := parseDecimal("amount", s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d)
}

// MustMoney is ParseMoney for literals known to be valid. It panics otherwise.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromInt(n int64) Money {
	if n < 0 {
		n = 0
	}
	return Money{value: decimal.NewFromInt(n)}
}

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) Add(o Money) Money               { return Money{value: m.value.Add(o.value)} }
func (m Money) MulPercent(p Percent) Money      { return Money{value: m.value.Mul(p.Fraction())} }
func (m Money) Equal(o Money) bool              { return m.value.Equal(o.value) }
func (m Money) GreaterThan(o Money) bool        { return m.value.GreaterThan(o.value) }
func (m Money) StringFixed(places int32) string { return m.value.StringFixed(places) }

// MulInt multiplies by a count of months or days. Negative counts give
// zero, as MoneyFromInt does.
func (m Money) MulInt(n int64) Money {
	if n <= 0 {
		return Money{}
	}
	return Money{value: m.value.Mul(decimal.NewFromInt(n))}
}

// String renders the amount with two decimal places ("1200.50").
func (m Money) String() string { return m.value.StringFixed(2) }

// Sum adds amounts.
func Sum(amounts ...Money) Money {
	total := Money{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// =============================================================================
// PERCENT
// =============================================================================

type Percent struct {
	value decimal.Decimal
}

func NewPercent(d decimal.Decimal) (Percent, error) {
	if err := nonNegative("percent", d); err != nil {
		return Percent{}, err
	}
	return Percent{value: d}, nil
}

func ParsePercent(s string) (Percent, error) {
	d, err := parseDecimal("percent", strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return Percent{}, err
	}
	return NewPercent(d)
}

func MustPercent(s string) Percent {
	p, err := ParsePercent(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) IsZero() bool             { return p.value.IsZero() }
func (p Percent) String() string           { return p.value.String() + "%" }

// Fraction returns the percentage as a ratio: 10% -> 0.1.
func (p Percent) Fraction() decimal.Decimal { return p.value.Div(hundred) }

// =============================================================================
// KWH - Meter readings and consumption
// =============================================================================

type KWh struct {
	value decimal.Decimal
}

func NewKWh(d decimal.Decimal) (KWh, error) {
	if err := nonNegative("reading", d); err != nil {
		return KWh{}, err
	}
	return KWh{value: d}, nil
}

func ParseKWh(s string) (KWh, error) {
	d, err := parseDecimal("reading", s)
	if err != nil {
		return KWh{}, err
	}
	return NewKWh(d)
}

func MustKWh(s string) KWh {
	k, err := ParseKWh(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k KWh) Decimal() decimal.Decimal { return k.value }
func (k KWh) String() string           { return k.value.String() + " kWh" }

// =============================================================================
// HELPERS
// =============================================================================

var hundred = decimal.NewFromInt(100)

// Hundred is the percent base, exported for callers that scale ratios.
func Hundred() decimal.Decimal { return hundred }

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &PreconditionError{Field: field, Value: s, Err: ErrMalformedNumber}
	}
	return d, nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &PreconditionError{Field: field, Value: d.String(), Err: ErrNegativeAmount}
	}
	return nil
}
