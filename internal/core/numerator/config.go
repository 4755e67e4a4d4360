// Package numerator provides domain contracts for invoice auto-numbering.
package numerator

// Default widths of the two number components.
const (
	DefaultPointOfSaleWidth = 5
	DefaultPadWidth         = 8
)

// Config holds numbering configuration for a single allocation.
type Config struct {
	// Series identifies the counter to draw from (e.g. invoice type "A").
	// Counters are independent per series.
	Series string

	// PointOfSale is printed as the number prefix. It does not select a
	// counter: all points of sale share the series counter.
	PointOfSale int

	// PointOfSaleWidth is the zero-padded prefix width (default 5)
	PointOfSaleWidth int

	// PadWidth is the zero-padded sequence width (default 8)
	PadWidth int
}

// DefaultConfig returns the PPPPP-NNNNNNNN layout for a series.
func DefaultConfig(series string, pointOfSale int) Config {
	return Config{
		Series:           series,
		PointOfSale:      pointOfSale,
		PointOfSaleWidth: DefaultPointOfSaleWidth,
		PadWidth:         DefaultPadWidth,
	}
}
