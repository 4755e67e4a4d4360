package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facturador/internal/core/apperror"
	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/http/v1/dto"
	"facturador/internal/infrastructure/pdf"
)

// InvoiceHandler handles invoice issuance, queries and documents.
type InvoiceHandler struct {
	*BaseHandler
	ledger    *invoice.Ledger
	renderers *pdf.Registry
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, ledger *invoice.Ledger, renderers *pdf.Registry) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, ledger: ledger, renderers: renderers}
}

// Create issues a new invoice.
// POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.ledger.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), inv.ID))
	h.Created(c, dto.FromInvoice(inv))
}

// List returns invoices matching the query filters.
// GET /invoices?type=&from=&to=
func (h *InvoiceHandler) List(c *gin.Context) {
	var q dto.ListInvoicesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := parseFilter(q)
	if err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.ledger.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInvoices(list))
}

// Get returns a single invoice.
// GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInvoice(inv))
}

// Document renders the invoice as a PDF attachment.
// GET /invoices/:id/document?layout=canvas|grid
func (h *InvoiceHandler) Document(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	inv, err := h.ledger.GetByID(ctx, id)
	if err != nil {
		h.Error(c, err)
		return
	}

	renderer, err := h.renderers.Get(c.Query("layout"))
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := renderer.Render(ctx, inv)
	if err != nil {
		h.Error(c, apperror.NewInternal(fmt.Errorf("render invoice %d: %w", inv.ID, err)))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+pdf.Filename(inv))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// PointsOfSale lists the configured points of sale.
// GET /points-of-sale
func (h *InvoiceHandler) PointsOfSale(c *gin.Context) {
	h.OK(c, dto.PointsOfSaleResponse(h.ledger.PointsOfSale()))
}

// Stats returns ledger aggregates.
// GET /stats
func (h *InvoiceHandler) Stats(c *gin.Context) {
	h.OK(c, dto.FromStats(h.ledger.Stats(c.Request.Context())))
}

const dateOnly = "2006-01-02"

func parseFilter(q dto.ListInvoicesQuery) (invoice.Filter, error) {
	var f invoice.Filter

	if q.Type != "" {
		t, err := invoice.ParseType(q.Type)
		if err != nil {
			return f, err
		}
		f.Type = &t
	}

	if q.From != "" {
		from, _, err := parseBound(q.From)
		if err != nil {
			return f, apperror.NewInvalidInput("invalid from date").WithDetail("from", q.From)
		}
		f.IssuedFrom = &from
	}

	if q.To != "" {
		to, isDate, err := parseBound(q.To)
		if err != nil {
			return f, apperror.NewInvalidInput("invalid to date").WithDetail("to", q.To)
		}
		// a bare date includes the whole day
		if isDate {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.IssuedTo = &to
	}

	return f, nil
}

// parseBound accepts RFC3339 or YYYY-MM-DD (UTC midnight).
func parseBound(s string) (t time.Time, isDate bool, err error) {
	if t, err = time.Parse(time.RFC3339Nano, s); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}
