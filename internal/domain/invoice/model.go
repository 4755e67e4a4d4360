// Package invoice is the invoice issuance engine: tax totals, authorization
// codes, the in-memory ledger of issued invoices and code verification.
package invoice

import (
	"strings"
	"time"

	"facturador/internal/core/apperror"
	"facturador/internal/core/types"
)

// Type is the invoice tax-presentation regime.
type Type string

const (
	// TypeA discriminates tax as a separate amount.
	TypeA Type = "A"
	// TypeB presents a tax-inclusive total.
	TypeB Type = "B"
)

// Types lists every supported invoice type.
var Types = []Type{TypeA, TypeB}

// Valid reports whether t is A or B.
func (t Type) Valid() bool {
	return t == TypeA || t == TypeB
}

// ParseType converts user input into a Type. Matching is exact: "a" is rejected.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", apperror.NewInvalidInvoiceType(s)
	}
	return t, nil
}

// StatusAuthorized is the only status an issued invoice can have.
const StatusAuthorized = "Authorized"

// LineItem is a single billed line.
type LineItem struct {
	Description string
	Quantity    types.Quantity
	UnitPrice   types.Money
}

// Amount returns quantity * unit price, unrounded.
func (i LineItem) Amount() types.Money {
	return i.Quantity.Mul(i.UnitPrice)
}

// Client is the invoice recipient, embedded by value.
type Client struct {
	LegalName    string
	TaxID        *string
	Address      *string
	TaxCondition string
}

// Validate checks the mandatory client fields.
func (c Client) Validate() error {
	if strings.TrimSpace(c.LegalName) == "" {
		return apperror.NewInvalidInput("client legal name is required").
			WithDetail("field", "client.legalName")
	}
	if strings.TrimSpace(c.TaxCondition) == "" {
		return apperror.NewInvalidInput("client tax condition is required").
			WithDetail("field", "client.taxCondition")
	}
	return nil
}

// Invoice is an issued, authorized invoice. All fields are fixed at creation.
type Invoice struct {
	ID            int64
	Type          Type
	Number        string
	PointOfSale   int
	AuthCode      string
	IssuedAt      time.Time
	AuthExpiresAt time.Time
	Client        Client
	Items         []LineItem
	Subtotal      types.Money
	Tax           types.Money
	Total         types.Money
	Status        string
}

// Clone returns a deep copy so callers cannot reach ledger-owned memory.
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Items = append([]LineItem(nil), inv.Items...)
	out.Client.TaxID = clonePtr(inv.Client.TaxID)
	out.Client.Address = clonePtr(inv.Client.Address)
	return &out
}

// IsExpired reports whether the authorization is past its expiry at now.
// The expiry instant itself still counts as valid.
func (inv *Invoice) IsExpired(now time.Time) bool {
	return now.After(inv.AuthExpiresAt)
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
