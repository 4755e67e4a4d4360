package numerator

import (
	"context"
)

// MockGenerator is a test implementation of Generator.
type MockGenerator struct {
	GetNextNumberFunc func(ctx context.Context, cfg Config) (string, error)
	PeekFunc          func(ctx context.Context, series string) (int64, error)
	SetNextNumberFunc func(ctx context.Context, series string, value int64) error
}

// GetNextNumber implements Generator.
func (m *MockGenerator) GetNextNumber(ctx context.Context, cfg Config) (string, error) {
	if m.GetNextNumberFunc != nil {
		return m.GetNextNumberFunc(ctx, cfg)
	}
	// Default: return predictable mock number
	return "00001-00000001", nil
}

// Peek implements Generator.
func (m *MockGenerator) Peek(ctx context.Context, series string) (int64, error) {
	if m.PeekFunc != nil {
		return m.PeekFunc(ctx, series)
	}
	return 1, nil
}

// SetNextNumber implements Generator.
func (m *MockGenerator) SetNextNumber(ctx context.Context, series string, value int64) error {
	if m.SetNextNumberFunc != nil {
		return m.SetNextNumberFunc(ctx, series, value)
	}
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
