package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.005", "0.01"},
		{"0.015", "0.02"},
		{"2.675", "2.68"},
		{"-0.005", "-0.01"},
		{"242", "242"},
		{"41.99999", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(MustMoney(tt.in))
			assert.True(t, MustMoney(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "242.00", Format(MustMoney("242")))
	assert.Equal(t, "0.50", Format(MustMoney("0.5")))
	assert.Equal(t, "0.00", Format(Zero()))
}

func TestBounds_Check(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"0", nil},
		{"1", nil},
		{"999999999", nil},
		{"2.5000000", nil},
		{"0.0001", nil},
		{"-999999999.9999", nil},
		{"1000000000", ErrTooLarge},
		{"1e400", ErrTooLarge},
		{"1e5000000", ErrTooLarge},
		{"123456789012345678901234567890123456789012345678901234567890123456789012345678901", ErrTooLarge},
		{"0.00001", ErrTooPrecise},
		{"1e-5000000", ErrTooPrecise},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.ErrorIs(t, QuantityBounds.Check(MustMoney(tt.in)), tt.want)
		})
	}
}

func TestBounds_CheckPrice(t *testing.T) {
	assert.NoError(t, PriceBounds.Check(MustMoney("999999999999.99")))
	assert.ErrorIs(t, PriceBounds.Check(MustMoney("1000000000000")), ErrTooLarge)
}
