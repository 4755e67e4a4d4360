package invoice

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Verification reasons.
const (
	ReasonValid    = "valid"
	ReasonExpired  = "expired"
	ReasonNotFound = "not found"
)

// Verification is the answer to "is this authorization code still valid?".
type Verification struct {
	Valid   bool
	Invoice *Invoice
	Reason  string
}

// Verifier checks authorization codes against the ledger. It never mutates.
type Verifier struct {
	ledger *Ledger
	now    Clock
}

// NewVerifier creates a verifier; a nil clock means time.Now.
func NewVerifier(ledger *Ledger, now Clock) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{ledger: ledger, now: now}
}

// Verify looks code up and compares its expiry with the current time.
func (v *Verifier) Verify(ctx context.Context, code string) Verification {
	ctx, span := tracer.Start(ctx, "ledger.Verify")
	defer span.End()

	inv, err := v.ledger.GetByAuthCode(ctx, code)
	if err != nil {
		span.SetAttributes(attribute.String("verification.reason", ReasonNotFound))
		return Verification{Valid: false, Reason: ReasonNotFound}
	}

	result := Verification{Valid: true, Invoice: inv, Reason: ReasonValid}
	if inv.IsExpired(v.now()) {
		result.Valid = false
		result.Reason = ReasonExpired
	}
	span.SetAttributes(attribute.String("verification.reason", result.Reason))
	return result
}
