package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"facturador/internal/core/types"
	"facturador/internal/domain/invoice"
)

// Canvas geometry in points, measured from the top-left corner of an A4 page.
const (
	canvasLeft      = 50.0
	canvasRight     = 300.0
	colQuantity     = 300.0
	colUnitPrice    = 350.0
	colAmount       = 450.0
	itemsTop        = 240.0
	rowHeight       = 15.0
	bottomMargin    = 100.0
	continuationTop = 50.0
)

// Canvas draws invoices at absolute positions with gofpdf.
type Canvas struct {
	head     Letterhead
	taxRate  types.Money
	compress bool
}

var _ Renderer = (*Canvas)(nil)

// NewCanvas creates the canvas renderer.
func NewCanvas(head Letterhead, taxRate types.Money) *Canvas {
	return &Canvas{head: head, taxRate: taxRate, compress: true}
}

// Layout implements Renderer.
func (c *Canvas) Layout() string { return LayoutCanvas }

// Render implements Renderer.
func (c *Canvas) Render(_ context.Context, inv *invoice.Invoice) ([]byte, error) {
	pdf := c.draw(inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render canvas pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Canvas) draw(inv *invoice.Invoice) *gofpdf.Fpdf {
	doc := newDocument(inv, c.head, c.taxRate)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(c.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(inv.IssuedAt)
	pdf.SetTitle(doc.Title+" "+doc.Number, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	pdf.AddPage()

	text := func(x, y float64, s string) { pdf.Text(x, y, tr(s)) }

	// issuer
	pdf.SetFont("Helvetica", "B", 16)
	text(canvasLeft, 50, doc.Head.Name)
	pdf.SetFont("Helvetica", "", 10)
	text(canvasLeft, 70, "Tax ID: "+doc.Head.TaxID)
	text(canvasLeft, 85, "Address: "+doc.Head.Address)
	text(canvasLeft, 100, "Phone: "+doc.Head.Phone)
	text(canvasLeft, 115, "VAT: "+doc.Head.TaxCondition)

	// invoice identity
	pdf.SetFont("Helvetica", "B", 20)
	text(canvasRight, 50, doc.Title)
	pdf.SetFont("Helvetica", "", 10)
	text(canvasRight, 70, "Number: "+doc.Number)
	text(canvasRight, 85, "Date: "+doc.Date)
	text(canvasRight, 100, "Point of sale: "+doc.PointOfSale)

	// client
	pdf.SetFont("Helvetica", "B", 12)
	text(canvasLeft, 140, "CLIENT")
	pdf.SetFont("Helvetica", "", 10)
	text(canvasLeft, 160, "Legal name: "+doc.ClientName)
	text(canvasLeft, 175, "Tax ID: "+doc.ClientTaxID)
	text(canvasLeft, 190, "Address: "+doc.ClientAddress)
	text(canvasLeft, 205, "Tax condition: "+doc.ClientTaxCondition)

	// items
	y := itemsTop
	pdf.SetFont("Helvetica", "B", 10)
	text(canvasLeft, y, "Description")
	text(colQuantity, y, "Qty")
	text(colUnitPrice, y, "Unit price")
	text(colAmount, y, "Amount")
	y += 20

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range doc.Rows {
		if y > pageHeight-bottomMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 9)
			y = continuationTop
		}
		text(canvasLeft, y, r.Description)
		text(colQuantity, y, r.Quantity)
		text(colUnitPrice, y, r.UnitPrice)
		text(colAmount, y, r.Amount)
		y += rowHeight
	}

	// totals and authorization need 109pt below the last row
	if y+109 > pageHeight-continuationTop {
		pdf.AddPage()
		y = continuationTop
	}

	y += 20
	pdf.SetFont("Helvetica", "B", 12)
	text(colUnitPrice, y, "SUBTOTAL:")
	text(colAmount, y, doc.Subtotal)
	y += 15
	text(colUnitPrice, y, doc.TaxLabel+":")
	text(colAmount, y, doc.Tax)
	y += 20
	pdf.SetFont("Helvetica", "B", 16)
	text(colUnitPrice, y, "TOTAL:")
	text(colAmount, y, doc.Total)

	y += 30
	pdf.SetFont("Helvetica", "", 8)
	text(canvasLeft, y, "CAE: "+doc.AuthCode)
	text(canvasLeft, y+12, "CAE expires: "+doc.AuthExpiresAt)
	text(canvasLeft, y+24, "Status: "+doc.Status)

	return pdf
}
