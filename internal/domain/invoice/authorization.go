package invoice

import (
	"math/rand"
	"strconv"
	"time"
)

// Authorization code bounds. Codes are always 14 decimal digits.
const (
	AuthCodeMin int64 = 10_000_000_000_000
	AuthCodeMax int64 = 99_999_999_999_999
)

// DefaultAuthValidity is how long an authorization code stays valid.
const DefaultAuthValidity = 10 * 24 * time.Hour

// Authorization is a simulated authorization (CAE) granted to an invoice.
type Authorization struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer produces authorization codes.
// Uniqueness is not checked here; the Ledger resamples on collision.
type Issuer struct {
	validity time.Duration
	// draw returns a uniform value in [0, n).
	draw func(n int64) int64
}

// NewIssuer creates an issuer backed by the global random source.
func NewIssuer(validity time.Duration) *Issuer {
	return NewIssuerWithSource(validity, rand.Int63n)
}

// NewIssuerWithSource creates an issuer with a custom uniform source.
// draw(n) must return a value in [0, n).
func NewIssuerWithSource(validity time.Duration, draw func(n int64) int64) *Issuer {
	if validity <= 0 {
		validity = DefaultAuthValidity
	}
	return &Issuer{validity: validity, draw: draw}
}

// Validity returns the configured code lifetime.
func (i *Issuer) Validity() time.Duration {
	return i.validity
}

// Issue grants a new authorization at now.
func (i *Issuer) Issue(now time.Time) Authorization {
	code := AuthCodeMin + i.draw(AuthCodeMax-AuthCodeMin+1)
	return Authorization{
		Code:      strconv.FormatInt(code, 10),
		IssuedAt:  now,
		ExpiresAt: now.Add(i.validity),
	}
}
