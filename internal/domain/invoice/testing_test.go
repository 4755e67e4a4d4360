package invoice

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"facturador/internal/core/types"
	"facturador/internal/infrastructure/numerator"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLedger(t *testing.T, clock *fakeClock) (*Ledger, *numerator.Service) {
	t.Helper()
	gen := numerator.New()
	l, err := NewLedger(LedgerConfig{
		Numerator: gen,
		Clock:     clock.Now,
	})
	require.NoError(t, err)
	return l, gen
}

func item(qty, price string) LineItem {
	return LineItem{
		Description: "Servicio de consultoria",
		Quantity:    types.MustMoney(qty),
		UnitPrice:   types.MustMoney(price),
	}
}

func validRequest(t Type) CreateRequest {
	return CreateRequest{
		Type:        t,
		PointOfSale: 1,
		Client: Client{
			LegalName:    "Cliente S.R.L.",
			TaxCondition: "Responsable Inscripto",
		},
		Items: []LineItem{item("2", "100")},
	}
}

func money(s string) types.Money {
	return types.MustMoney(s)
}
