package invoice

import (
	"fmt"

	"facturador/internal/core/apperror"
	"facturador/internal/core/types"
)

// DefaultTaxRate is the VAT rate applied to every invoice.
var DefaultTaxRate = types.MustMoney("0.21")

// TypeBMode selects how type B totals are broken down.
type TypeBMode string

const (
	// TypeBLegacy reports the tax-inclusive total as the subtotal and zero tax.
	// It reproduces the historical output of the service byte for byte.
	TypeBLegacy TypeBMode = "legacy"

	// TypeBInclusive splits the tax-inclusive total into net and tax.
	TypeBInclusive TypeBMode = "inclusive"
)

// ParseTypeBMode validates a configured mode; empty means legacy.
func ParseTypeBMode(s string) (TypeBMode, error) {
	switch TypeBMode(s) {
	case "", TypeBLegacy:
		return TypeBLegacy, nil
	case TypeBInclusive:
		return TypeBInclusive, nil
	default:
		return "", fmt.Errorf("unknown type B mode %q", s)
	}
}

// Totals are the stored monetary figures of an invoice, rounded to cents.
type Totals struct {
	Subtotal types.Money
	Tax      types.Money
	Total    types.Money
}

// TaxCalculator derives invoice totals from line items.
type TaxCalculator struct {
	rate      types.Money
	typeBMode TypeBMode
}

// NewTaxCalculator creates a calculator. The rate must lie in (0, 1);
// an empty mode means TypeBLegacy.
func NewTaxCalculator(rate types.Money, mode TypeBMode) (*TaxCalculator, error) {
	if !rate.IsPositive() || rate.GreaterThanOrEqual(types.MustMoney("1")) {
		return nil, fmt.Errorf("tax rate %s out of range (0, 1)", rate)
	}
	mode, err := ParseTypeBMode(string(mode))
	if err != nil {
		return nil, err
	}
	return &TaxCalculator{rate: rate, typeBMode: mode}, nil
}

// DefaultTaxCalculator applies DefaultTaxRate with legacy type B totals.
func DefaultTaxCalculator() *TaxCalculator {
	return &TaxCalculator{rate: DefaultTaxRate, typeBMode: TypeBLegacy}
}

// Rate returns the configured tax rate.
func (c *TaxCalculator) Rate() types.Money {
	return c.rate
}

// ComputeTotals computes subtotal, tax and total for items under invoice type t.
//
// Type A: subtotal = round(raw), tax = round(raw*rate), total = subtotal + tax.
// Type B: total = round(raw*(1+rate)); the split depends on the TypeBMode.
func (c *TaxCalculator) ComputeTotals(items []LineItem, t Type) (Totals, error) {
	if !t.Valid() {
		return Totals{}, apperror.NewInvalidInvoiceType(string(t))
	}
	if err := ValidateItems(items); err != nil {
		return Totals{}, err
	}

	raw := types.Zero()
	for _, item := range items {
		raw = raw.Add(item.Amount())
	}

	if t == TypeA {
		subtotal := types.Round(raw)
		tax := types.Round(raw.Mul(c.rate))
		return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}, nil
	}

	gross := c.rate.Add(types.MustMoney("1"))
	total := types.Round(raw.Mul(gross))
	if c.typeBMode == TypeBInclusive {
		subtotal := types.Round(total.Div(gross))
		return Totals{Subtotal: subtotal, Tax: total.Sub(subtotal), Total: total}, nil
	}
	return Totals{Subtotal: total, Tax: types.Zero(), Total: total}, nil
}

// ValidateItems enforces a non-empty list of positive quantities and
// non-negative prices, each within types.QuantityBounds / types.PriceBounds.
func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return apperror.NewMissingItems()
	}
	for i, item := range items {
		if err := types.QuantityBounds.Check(item.Quantity); err != nil {
			return outOfBounds("item quantity", fmt.Sprintf("items[%d].quantity", i), types.QuantityBounds, err)
		}
		if err := types.PriceBounds.Check(item.UnitPrice); err != nil {
			return outOfBounds("item unit price", fmt.Sprintf("items[%d].unitPrice", i), types.PriceBounds, err)
		}
		if !item.Quantity.IsPositive() {
			return apperror.NewInvalidInput("item quantity must be positive").
				WithDetail("field", fmt.Sprintf("items[%d].quantity", i)).
				WithDetail("value", item.Quantity.String())
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewInvalidInput("item unit price must not be negative").
				WithDetail("field", fmt.Sprintf("items[%d].unitPrice", i)).
				WithDetail("value", item.UnitPrice.String())
		}
	}
	return nil
}

// outOfBounds reports the limits rather than the value, which may print arbitrarily long.
func outOfBounds(what, field string, b types.Bounds, err error) error {
	return apperror.NewInvalidInput(what+": "+err.Error()).
		WithDetail("field", field).
		WithDetail("maxIntegerDigits", b.MaxIntDigits).
		WithDetail("maxDecimalPlaces", b.MaxPlaces)
}
