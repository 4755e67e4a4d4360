package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"facturador/internal/core/types"
	"facturador/internal/domain/invoice"
)

// Grid composes invoices from rows and columns with maroto.
// Page breaks and page numbers are handled by maroto.
type Grid struct {
	head    Letterhead
	taxRate types.Money
}

var _ Renderer = (*Grid)(nil)

// NewGrid creates the grid renderer.
func NewGrid(head Letterhead, taxRate types.Money) *Grid {
	return &Grid{head: head, taxRate: taxRate}
}

// Layout implements Renderer.
func (g *Grid) Layout() string { return LayoutGrid }

// Render implements Renderer.
func (g *Grid) Render(_ context.Context, inv *invoice.Invoice) ([]byte, error) {
	doc := newDocument(inv, g.head, g.taxRate)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Letterhead and identity
	m.AddRow(30,
		col.New(7).Add(
			text.New(doc.Head.Name, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.New("Tax ID: "+doc.Head.TaxID, props.Text{Top: 7, Size: 9}),
			text.New("Address: "+doc.Head.Address, props.Text{Top: 11, Size: 9}),
			text.New("Phone: "+doc.Head.Phone, props.Text{Top: 15, Size: 9}),
			text.New("VAT: "+doc.Head.TaxCondition, props.Text{Top: 19, Size: 9}),
		),
		col.New(5).Add(
			text.New(doc.Title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Number: "+doc.Number, props.Text{Top: 9, Size: 10, Align: align.Right}),
			text.New("Date: "+doc.Date, props.Text{Top: 14, Size: 10, Align: align.Right}),
			text.New("Point of sale: "+doc.PointOfSale, props.Text{Top: 19, Size: 10, Align: align.Right}),
		),
	)

	// Client
	m.AddRow(28,
		col.New(12).Add(
			text.New("CLIENT", props.Text{Size: 12, Style: fontstyle.Bold}),
			text.New("Legal name: "+doc.ClientName, props.Text{Top: 7, Size: 10}),
			text.New("Tax ID: "+doc.ClientTaxID, props.Text{Top: 12, Size: 10}),
			text.New("Address: "+doc.ClientAddress, props.Text{Top: 17, Size: 10}),
			text.New("Tax condition: "+doc.ClientTaxCondition, props.Text{Top: 22, Size: 10}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	// Items
	for _, r := range doc.Rows {
		m.AddRow(7,
			text.NewCol(6, r.Description, props.Text{Size: 9}),
			text.NewCol(2, r.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "SUBTOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
		text.NewCol(2, doc.Subtotal, props.Text{Style: fontstyle.Bold, Size: 11, Top: 3, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, doc.TaxLabel+":", props.Text{Style: fontstyle.Bold, Size: 11}),
		text.NewCol(2, doc.Tax, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "TOTAL:", props.Text{Style: fontstyle.Bold, Size: 14}),
		text.NewCol(2, doc.Total, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right}),
	)

	// Authorization
	m.AddRow(18,
		col.New(12).Add(
			text.New("CAE: "+doc.AuthCode, props.Text{Top: 4, Size: 8}),
			text.New("CAE expires: "+doc.AuthExpiresAt, props.Text{Top: 8, Size: 8}),
			text.New("Status: "+doc.Status, props.Text{Top: 12, Size: 8}),
		),
	)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render grid pdf: %w", err)
	}
	return out.GetBytes(), nil
}
