package invoice

import (
	"fmt"
	"slices"
)

// MaxPointOfSale is the largest point of sale that fits the 5-digit prefix.
const MaxPointOfSale = 99_999

// DefaultPointsOfSale is the registry used when none is configured.
func DefaultPointsOfSale() []int {
	return []int{1, 2, 3, 4, 5}
}

// PointOfSaleRegistry is the fixed set of billing terminals allowed to issue.
// It is read-only after construction.
type PointOfSaleRegistry struct {
	points []int
}

// NewPointOfSaleRegistry validates and freezes a set of points of sale.
func NewPointOfSaleRegistry(points []int) (*PointOfSaleRegistry, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("point of sale registry must not be empty")
	}
	sorted := slices.Clone(points)
	slices.Sort(sorted)
	for i, p := range sorted {
		if p < 1 || p > MaxPointOfSale {
			return nil, fmt.Errorf("point of sale %d out of range 1..%d", p, MaxPointOfSale)
		}
		if i > 0 && sorted[i-1] == p {
			return nil, fmt.Errorf("duplicate point of sale %d", p)
		}
	}
	return &PointOfSaleRegistry{points: sorted}, nil
}

// Contains reports whether p may issue invoices.
func (r *PointOfSaleRegistry) Contains(p int) bool {
	_, found := slices.BinarySearch(r.points, p)
	return found
}

// List returns the registry in ascending order.
func (r *PointOfSaleRegistry) List() []int {
	return slices.Clone(r.points)
}
