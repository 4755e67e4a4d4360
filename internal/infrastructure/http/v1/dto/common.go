// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"facturador/internal/core/types"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Amount is a decimal written as a JSON number from its exact string form,
// so encoding never goes through float64.
type Amount string

// money renders a stored monetary value with two decimals, e.g. 242.00.
func money(m types.Money) Amount {
	return Amount(types.Format(m))
}

// exact renders an input value as given, e.g. 1.5 or 33.333.
func exact(d decimal.Decimal) Amount {
	return Amount(d.String())
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("0"), nil
	}
	return []byte(a), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if _, err := decimal.NewFromString(string(data)); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(data)
	return nil
}

// Decimal parses a back into a decimal.
func (a Amount) Decimal() decimal.Decimal {
	d, _ := decimal.NewFromString(string(a))
	return d
}
