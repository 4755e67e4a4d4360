// Package numerator provides domain contracts for invoice auto-numbering.
// Implementations live in infrastructure layer.
package numerator

import (
	"context"
)

// Generator generates sequential invoice numbers.
// This is the domain contract - implementations live in infrastructure layer.
type Generator interface {
	// GetNextNumber consumes the next value of cfg.Series and returns it formatted.
	// Pattern: PPPPP-NNNNNNNN (e.g., 00001-00000042)
	GetNextNumber(ctx context.Context, cfg Config) (string, error)

	// Peek returns the value the next GetNextNumber call for series will use.
	Peek(ctx context.Context, series string) (int64, error)

	// SetNextNumber sets the next number value (for seeding and tests).
	SetNextNumber(ctx context.Context, series string, value int64) error
}
