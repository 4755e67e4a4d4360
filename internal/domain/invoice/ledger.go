package invoice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"facturador/internal/core/apperror"
	"facturador/internal/core/numerator"
	"facturador/internal/core/types"
	"facturador/internal/domain"
	"facturador/pkg/logger"
)

var tracer = otel.Tracer("facturador/ledger")

// maxAuthAttempts bounds resampling when a drawn code is already taken.
const maxAuthAttempts = 5

// Clock returns the current time. Injected so expiry can be tested.
type Clock func() time.Time

// CreateRequest is a validated-at-boundary request to issue an invoice.
type CreateRequest struct {
	Type        Type
	PointOfSale int
	Client      Client
	Items       []LineItem
}

// Filter narrows List results. Nil fields impose no constraint; date
// bounds are inclusive.
type Filter struct {
	Type       *Type
	IssuedFrom *time.Time
	IssuedTo   *time.Time
}

// Stats aggregates the whole ledger.
type Stats struct {
	Count       int
	CountByType map[Type]int
	TotalAmount types.Money
}

// LedgerConfig wires a Ledger. Nil fields get defaults.
type LedgerConfig struct {
	Registry   *PointOfSaleRegistry
	Numerator  numerator.Generator
	Calculator *TaxCalculator
	Issuer     *Issuer
	Clock      Clock
	Logger     *logger.Logger
}

// Ledger is the authoritative store of issued invoices.
//
// Every mutation runs under the write lock: authorization issuance, the
// sequence counter and the append form one critical section, so ids and
// numbers have no gaps and no reuse under concurrent callers. Reads take the
// read lock and return deep copies.
type Ledger struct {
	mu         sync.RWMutex
	invoices   []*Invoice
	byAuthCode map[string]*Invoice

	registry  *PointOfSaleRegistry
	numerator numerator.Generator
	calc      *TaxCalculator
	issuer    *Issuer
	now       Clock
	hooks     *domain.HookRegistry[*Invoice]
	log       *logger.Logger
}

// NewLedger creates an empty ledger.
func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if cfg.Numerator == nil {
		return nil, fmt.Errorf("ledger: numerator is required")
	}
	if cfg.Registry == nil {
		reg, err := NewPointOfSaleRegistry(DefaultPointsOfSale())
		if err != nil {
			return nil, err
		}
		cfg.Registry = reg
	}
	if cfg.Calculator == nil {
		cfg.Calculator = DefaultTaxCalculator()
	}
	if cfg.Issuer == nil {
		cfg.Issuer = NewIssuer(DefaultAuthValidity)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return &Ledger{
		byAuthCode: make(map[string]*Invoice),
		registry:   cfg.Registry,
		numerator:  cfg.Numerator,
		calc:       cfg.Calculator,
		issuer:     cfg.Issuer,
		now:        cfg.Clock,
		hooks:      domain.NewHookRegistry[*Invoice](),
		log:        cfg.Logger.WithComponent("ledger"),
	}, nil
}

// Hooks returns the hook registry for external registration.
// Before-create hooks receive a draft without id, number or authorization.
func (l *Ledger) Hooks() *domain.HookRegistry[*Invoice] {
	return l.hooks
}

// PointsOfSale returns the configured registry.
func (l *Ledger) PointsOfSale() []int {
	return l.registry.List()
}

// Create validates req, computes totals, authorizes and appends a new invoice.
// Either a complete invoice is appended or nothing changes.
func (l *Ledger) Create(ctx context.Context, req CreateRequest) (*Invoice, error) {
	ctx, span := tracer.Start(ctx, "ledger.Create", trace.WithAttributes(
		attribute.String("invoice.type", string(req.Type)),
		attribute.Int("invoice.point_of_sale", req.PointOfSale),
		attribute.Int("invoice.items", len(req.Items)),
	))
	defer span.End()

	inv, err := l.create(ctx, req)
	if err != nil {
		appErr := apperror.Classify(err)
		span.RecordError(appErr)
		span.SetStatus(codes.Error, appErr.Code)
		l.log.WithContext(ctx).Debugw("invoice rejected", "code", appErr.Code, "reason", appErr.Message)
		return nil, appErr
	}

	span.SetAttributes(attribute.Int64("invoice.id", inv.ID), attribute.String("invoice.number", inv.Number))
	l.log.WithContext(ctx).Infow("invoice authorized",
		"id", inv.ID,
		"type", inv.Type,
		"number", inv.Number,
		"total", types.Format(inv.Total),
	)

	if err := l.hooks.RunAfterCreate(ctx, inv.Clone()); err != nil {
		l.log.WithContext(ctx).Warnw("after-create hook failed", "id", inv.ID, "error", err)
	}
	return inv.Clone(), nil
}

func (l *Ledger) create(ctx context.Context, req CreateRequest) (*Invoice, error) {
	if !req.Type.Valid() {
		return nil, apperror.NewInvalidInvoiceType(string(req.Type))
	}
	if !l.registry.Contains(req.PointOfSale) {
		return nil, apperror.NewInvalidPointOfSale(req.PointOfSale)
	}
	if len(req.Items) == 0 {
		return nil, apperror.NewMissingItems()
	}
	if err := req.Client.Validate(); err != nil {
		return nil, err
	}

	totals, err := l.calc.ComputeTotals(req.Items, req.Type)
	if err != nil {
		return nil, err
	}

	draft := &Invoice{
		Type:        req.Type,
		PointOfSale: req.PointOfSale,
		Client:      req.Client,
		Items:       req.Items,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		Status:      StatusAuthorized,
	}
	// detach from caller-owned slices and pointers
	draft = draft.Clone()

	if err := l.hooks.RunBeforeCreate(ctx, draft.Clone()); err != nil {
		return nil, err
	}

	return l.appendDraft(ctx, draft)
}

// appendDraft finalizes draft inside the critical section.
// Nothing fallible runs after the counter has been consumed.
func (l *Ledger) appendDraft(ctx context.Context, draft *Invoice) (*Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	auth, err := l.issueUnique(l.now())
	if err != nil {
		return nil, err
	}

	number, err := l.numerator.GetNextNumber(ctx, numerator.DefaultConfig(string(draft.Type), draft.PointOfSale))
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("allocate number: %w", err))
	}

	draft.ID = int64(len(l.invoices) + 1)
	draft.Number = number
	draft.AuthCode = auth.Code
	draft.IssuedAt = auth.IssuedAt
	draft.AuthExpiresAt = auth.ExpiresAt

	l.invoices = append(l.invoices, draft)
	l.byAuthCode[draft.AuthCode] = draft
	return draft, nil
}

// issueUnique must be called with mu held.
func (l *Ledger) issueUnique(now time.Time) (Authorization, error) {
	for attempt := 0; attempt < maxAuthAttempts; attempt++ {
		auth := l.issuer.Issue(now)
		if _, taken := l.byAuthCode[auth.Code]; !taken {
			return auth, nil
		}
	}
	return Authorization{}, apperror.NewInternal(
		fmt.Errorf("no unique authorization code after %d attempts", maxAuthAttempts))
}

// List returns invoices matching every provided filter, in creation order.
func (l *Ledger) List(ctx context.Context, f Filter) ([]*Invoice, error) {
	_, span := tracer.Start(ctx, "ledger.List")
	defer span.End()

	if f.Type != nil && !f.Type.Valid() {
		return nil, apperror.NewInvalidInvoiceType(string(*f.Type))
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := lo.Filter(l.invoices, func(inv *Invoice, _ int) bool {
		return f.matches(inv)
	})
	span.SetAttributes(attribute.Int("invoice.matched", len(matched)))
	return lo.Map(matched, func(inv *Invoice, _ int) *Invoice { return inv.Clone() }), nil
}

func (f Filter) matches(inv *Invoice) bool {
	if f.Type != nil && inv.Type != *f.Type {
		return false
	}
	if f.IssuedFrom != nil && inv.IssuedAt.Before(*f.IssuedFrom) {
		return false
	}
	if f.IssuedTo != nil && inv.IssuedAt.After(*f.IssuedTo) {
		return false
	}
	return true
}

// GetByID returns the invoice with the given id.
func (l *Ledger) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	_, span := tracer.Start(ctx, "ledger.GetByID", trace.WithAttributes(attribute.Int64("invoice.id", id)))
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	// ids are 1-based positions in the ledger
	if id < 1 || id > int64(len(l.invoices)) {
		return nil, apperror.NewNotFound("invoice", id)
	}
	return l.invoices[id-1].Clone(), nil
}

// GetByAuthCode returns the invoice holding the given authorization code.
func (l *Ledger) GetByAuthCode(ctx context.Context, code string) (*Invoice, error) {
	_, span := tracer.Start(ctx, "ledger.GetByAuthCode")
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	inv, ok := l.byAuthCode[code]
	if !ok {
		return nil, apperror.NewNotFound("authorization code", code)
	}
	return inv.Clone(), nil
}

// Count returns the number of issued invoices.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.invoices)
}

// Stats aggregates count per type and the rounded sum of totals.
func (l *Ledger) Stats(ctx context.Context) Stats {
	_, span := tracer.Start(ctx, "ledger.Stats")
	defer span.End()

	l.mu.RLock()
	defer l.mu.RUnlock()

	byType := lo.CountValuesBy(l.invoices, func(inv *Invoice) Type { return inv.Type })
	for _, t := range Types {
		if _, ok := byType[t]; !ok {
			byType[t] = 0
		}
	}

	total := lo.Reduce(l.invoices, func(acc types.Money, inv *Invoice, _ int) types.Money {
		return acc.Add(inv.Total)
	}, types.Zero())

	return Stats{
		Count:       len(l.invoices),
		CountByType: byType,
		TotalAmount: types.Round(total),
	}
}
