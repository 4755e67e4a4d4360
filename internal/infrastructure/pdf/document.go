package pdf

import (
	"fmt"
	"unicode/utf8"

	"facturador/internal/core/types"
	"facturador/internal/domain/invoice"
)

// Description budget for a single table row.
const (
	maxDescriptionRunes = 40
	ellipsis            = "..."
)

const dateLayout = "02/01/2006"

// document is the printable view of an invoice. Every value is already
// formatted; renderers only position text.
type document struct {
	Head        Letterhead
	Title       string
	Number      string
	Date        string
	PointOfSale string

	ClientName         string
	ClientTaxID        string
	ClientAddress      string
	ClientTaxCondition string

	Rows []row

	Subtotal string
	TaxLabel string
	Tax      string
	Total    string

	AuthCode      string
	AuthExpiresAt string
	Status        string
}

type row struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// newDocument prints stored totals as-is; only line amounts are derived.
func newDocument(inv *invoice.Invoice, head Letterhead, taxRate types.Money) document {
	doc := document{
		Head:               head,
		Title:              "INVOICE " + string(inv.Type),
		Number:             inv.Number,
		Date:               inv.IssuedAt.Format(dateLayout),
		PointOfSale:        fmt.Sprintf("%d", inv.PointOfSale),
		ClientName:         inv.Client.LegalName,
		ClientTaxID:        orNA(inv.Client.TaxID),
		ClientAddress:      orNA(inv.Client.Address),
		ClientTaxCondition: inv.Client.TaxCondition,
		Subtotal:           currency(inv.Subtotal),
		TaxLabel:           fmt.Sprintf("VAT (%s%%)", taxRate.Shift(2).String()),
		Tax:                currency(inv.Tax),
		Total:              currency(inv.Total),
		AuthCode:           inv.AuthCode,
		AuthExpiresAt:      inv.AuthExpiresAt.Format(dateLayout),
		Status:             inv.Status,
	}

	doc.Rows = make([]row, 0, len(inv.Items))
	for _, it := range inv.Items {
		doc.Rows = append(doc.Rows, row{
			Description: truncate(it.Description),
			Quantity:    it.Quantity.String(),
			UnitPrice:   currency(it.UnitPrice),
			Amount:      currency(it.Amount()),
		})
	}
	return doc
}

// truncate shortens s to maxDescriptionRunes, ending in an ellipsis.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxDescriptionRunes-len(ellipsis)]) + ellipsis
}

func currency(m types.Money) string {
	return "$" + types.Format(m)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
