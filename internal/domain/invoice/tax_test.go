package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/core/apperror"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name  string
		mode  TypeBMode
		typ   Type
		items []LineItem
		want  Totals
	}{
		{
			name:  "type A discriminates tax",
			typ:   TypeA,
			items: []LineItem{item("2", "100")},
			want:  Totals{Subtotal: money("200"), Tax: money("42"), Total: money("242")},
		},
		{
			name:  "type B legacy reports inclusive total as subtotal",
			mode:  TypeBLegacy,
			typ:   TypeB,
			items: []LineItem{item("2", "100")},
			want:  Totals{Subtotal: money("242"), Tax: money("0"), Total: money("242")},
		},
		{
			name:  "type B inclusive splits net and tax",
			mode:  TypeBInclusive,
			typ:   TypeB,
			items: []LineItem{item("2", "100")},
			want:  Totals{Subtotal: money("200"), Tax: money("42"), Total: money("242")},
		},
		{
			name:  "type A sums several items and rounds",
			typ:   TypeA,
			items: []LineItem{item("3", "33.333"), item("1.5", "10")},
			// raw = 99.999 + 15 = 114.999
			want: Totals{Subtotal: money("115"), Tax: money("24.15"), Total: money("139.15")},
		},
		{
			name:  "zero price is allowed",
			typ:   TypeA,
			items: []LineItem{item("1", "0")},
			want:  Totals{Subtotal: money("0"), Tax: money("0"), Total: money("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewTaxCalculator(DefaultTaxRate, tt.mode)
			require.NoError(t, err)
			got, err := calc.ComputeTotals(tt.items, tt.typ)
			require.NoError(t, err)

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal: got %s", got.Subtotal)
			assert.True(t, tt.want.Tax.Equal(got.Tax), "tax: got %s", got.Tax)
			assert.True(t, tt.want.Total.Equal(got.Total), "total: got %s", got.Total)
		})
	}
}

func TestComputeTotals_TypeATotalIsSubtotalPlusTax(t *testing.T) {
	calc := DefaultTaxCalculator()
	// amounts whose tax lands exactly on a half cent
	for _, price := range []string{"0.025", "0.05", "1.005", "12.345", "999.995"} {
		got, err := calc.ComputeTotals([]LineItem{item("1", price)}, TypeA)
		require.NoError(t, err)
		assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax)), "price %s", price)
	}
}

func TestComputeTotals_Errors(t *testing.T) {
	calc := DefaultTaxCalculator()

	tests := []struct {
		name  string
		typ   Type
		items []LineItem
		code  string
	}{
		{"empty items", TypeA, nil, apperror.CodeMissingItems},
		{"zero quantity", TypeA, []LineItem{item("0", "10")}, apperror.CodeInvalidInput},
		{"negative quantity", TypeB, []LineItem{item("-1", "10")}, apperror.CodeInvalidInput},
		{"negative price", TypeA, []LineItem{item("1", "-0.01")}, apperror.CodeInvalidInput},
		{"unknown type", Type("C"), []LineItem{item("1", "1")}, apperror.CodeInvalidInvoiceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.ComputeTotals(tt.items, tt.typ)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.code), "got %v", err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestParseTypeBMode(t *testing.T) {
	mode, err := ParseTypeBMode("")
	require.NoError(t, err)
	assert.Equal(t, TypeBLegacy, mode)

	mode, err = ParseTypeBMode("inclusive")
	require.NoError(t, err)
	assert.Equal(t, TypeBInclusive, mode)

	_, err = ParseTypeBMode("exclusive")
	assert.Error(t, err)
}

func TestNewTaxCalculator(t *testing.T) {
	calc, err := NewTaxCalculator(money("0.105"), "")
	require.NoError(t, err)
	assert.True(t, money("0.105").Equal(calc.Rate()))

	for _, rate := range []string{"0", "-0.21", "1", "1.5"} {
		_, err := NewTaxCalculator(money(rate), TypeBLegacy)
		assert.Error(t, err, "rate %s", rate)
	}

	_, err = NewTaxCalculator(DefaultTaxRate, "exclusive")
	assert.Error(t, err)
}

// Type A rounds subtotal and tax separately and adds them. On half-cent inputs
// this can differ by a cent from rounding the gross amount once.
func TestComputeTotals_TypeARoundsPartsSeparately(t *testing.T) {
	got, err := DefaultTaxCalculator().ComputeTotals([]LineItem{item("1", "0.125")}, TypeA)
	require.NoError(t, err)

	// raw 0.125: subtotal 0.13, tax round(0.02625) = 0.03; round(0.15125) would be 0.15
	assert.True(t, money("0.13").Equal(got.Subtotal), "subtotal: got %s", got.Subtotal)
	assert.True(t, money("0.03").Equal(got.Tax), "tax: got %s", got.Tax)
	assert.True(t, money("0.16").Equal(got.Total), "total: got %s", got.Total)
}

func TestValidateItems_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		item  LineItem
		field string
	}{
		{"huge quantity", item("1e400", "1"), "items[0].quantity"},
		{"huge exponent quantity", item("1e5000000", "1"), "items[0].quantity"},
		{"too precise quantity", item("0.00001", "1"), "items[0].quantity"},
		{"huge price", item("1", "1e13"), "items[0].unitPrice"},
		{"tiny exponent price", item("1", "1e-5000000"), "items[0].unitPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems([]LineItem{tt.item})
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}

	assert.NoError(t, ValidateItems([]LineItem{item("999999999.9999", "999999999999.9999")}))
}
