// Package numerator provides the in-process implementation of invoice auto-numbering.
// This is the infrastructure layer - it implements core/numerator.Generator interface.
package numerator

import (
	"context"
	"fmt"
	"sync"

	corenumerator "facturador/internal/core/numerator"
)

// Service keeps one running counter per series in process memory.
// Counters start at 1 and only move forward; a restart resets them.
type Service struct {
	mu       sync.Mutex
	counters map[string]int64
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator with every series starting at 1.
func New() *Service {
	return &Service{
		counters: make(map[string]int64),
	}
}

// GetNextNumber generates the next invoice number.
// Pattern: PPPPP-NNNNNNNN (e.g., 00003-00000012)
//
// Reading, formatting and incrementing happen under one lock, so concurrent
// callers never observe the same value and no value is skipped.
func (s *Service) GetNextNumber(_ context.Context, cfg corenumerator.Config) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if cfg.Series == "" {
		return "", fmt.Errorf("numerator: empty series")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	num := s.current(cfg.Series)
	s.counters[cfg.Series] = num + 1

	return formatNumber(cfg, num), nil
}

// Peek returns the next value of series without consuming it.
func (s *Service) Peek(_ context.Context, series string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(series), nil
}

// SetNextNumber sets the next number value for series.
// Moving a counter backwards would reuse numbers, so it is rejected.
func (s *Service) SetNextNumber(_ context.Context, series string, value int64) error {
	if value < 1 {
		return fmt.Errorf("numerator: next number must be positive, got %d", value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.current(series); value < cur {
		return fmt.Errorf("numerator: series %s is already at %d, cannot rewind to %d", series, cur, value)
	}
	s.counters[series] = value
	return nil
}

// current must be called with mu held.
func (s *Service) current(series string) int64 {
	if v, ok := s.counters[series]; ok {
		return v
	}
	return 1
}

// formatNumber creates the final number string.
func formatNumber(cfg corenumerator.Config, num int64) string {
	posWidth := cfg.PointOfSaleWidth
	if posWidth == 0 {
		posWidth = corenumerator.DefaultPointOfSaleWidth
	}
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = corenumerator.DefaultPadWidth
	}

	return fmt.Sprintf("%0*d-%0*d", posWidth, cfg.PointOfSale, padWidth, num)
}

// ParseNumber splits a formatted number into point of sale and sequence.
// Returns -1, -1 if parsing fails.
func ParseNumber(formatted string) (pointOfSale int, seq int64) {
	var pos int
	var num int64
	if n, err := fmt.Sscanf(formatted, "%d-%d", &pos, &num); err != nil || n != 2 {
		return -1, -1
	}
	return pos, num
}
