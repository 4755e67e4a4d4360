// Package types provides common type aliases and utilities.
package types

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for every monetary amount.
const MoneyPlaces int32 = 2

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity is an item quantity; fractional quantities are allowed.
type Quantity = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Round rounds to MoneyPlaces, half away from zero.
// This is the only rounding mode used for stored amounts.
func Round(m Money) Money {
	return m.Round(MoneyPlaces)
}

// Format renders m with exactly two decimals, e.g. "242.00".
func Format(m Money) string {
	return m.StringFixed(MoneyPlaces)
}

// Bounds limits the size and precision of an amount accepted from callers.
type Bounds struct {
	// MaxIntDigits is the number of digits allowed before the decimal point
	MaxIntDigits int32
	// MaxPlaces is the number of significant fractional digits allowed
	MaxPlaces int32
}

var (
	// QuantityBounds: below one billion units, at most 4 decimals.
	QuantityBounds = Bounds{MaxIntDigits: 9, MaxPlaces: 4}
	// PriceBounds: below one trillion, at most 4 decimals.
	PriceBounds = Bounds{MaxIntDigits: 12, MaxPlaces: 4}
)

var (
	ErrTooLarge   = errors.New("value is too large")
	ErrTooPrecise = errors.New("value has too many decimal places")
)

// Hard limits checked before any arithmetic, so inputs like 1e5000000 are
// rejected without rescaling them.
const (
	maxCoefficientBits = 256
	minExponent        = -64
)

// Check reports whether d fits b. Trailing fractional zeros do not count
// against MaxPlaces.
func (b Bounds) Check(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp := d.Exponent()
	if exp > b.MaxIntDigits || d.Coefficient().BitLen() > maxCoefficientBits {
		return ErrTooLarge
	}
	if exp < minExponent {
		return ErrTooPrecise
	}
	if int64(d.NumDigits())+int64(exp) > int64(b.MaxIntDigits) {
		return ErrTooLarge
	}
	if exp < -b.MaxPlaces && !d.Equal(d.Truncate(b.MaxPlaces)) {
		return ErrTooPrecise
	}
	return nil
}
