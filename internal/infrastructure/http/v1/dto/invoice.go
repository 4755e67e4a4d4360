package dto

import (
	"time"

	"facturador/internal/core/types"
	"facturador/internal/domain/invoice"
)

// --- Requests ---

// CreateInvoiceRequest is the body of POST /invoices.
// Semantic checks (type, point of sale, items) are left to the ledger so
// they surface with their own error codes.
type CreateInvoiceRequest struct {
	Type        string            `json:"type"`
	PointOfSale int               `json:"pointOfSale"`
	Client      ClientDTO         `json:"client"`
	Items       []LineItemRequest `json:"items" binding:"max=500,dive"`
}

// ClientDTO is the invoice recipient, shared by requests and responses.
type ClientDTO struct {
	LegalName    string  `json:"legalName" binding:"max=200"`
	TaxID        *string `json:"taxId,omitempty" binding:"omitempty,max=20"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=200"`
	TaxCondition string  `json:"taxCondition" binding:"max=100"`
}

// LineItemRequest is one billed line of a create request.
type LineItemRequest struct {
	Description string         `json:"description" binding:"max=500"`
	Quantity    types.Quantity `json:"quantity"`
	UnitPrice   types.Money    `json:"unitPrice"`
}

// ToDomain converts the request for the ledger.
func (r CreateInvoiceRequest) ToDomain() invoice.CreateRequest {
	items := make([]invoice.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, invoice.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return invoice.CreateRequest{
		Type:        invoice.Type(r.Type),
		PointOfSale: r.PointOfSale,
		Client: invoice.Client{
			LegalName:    r.Client.LegalName,
			TaxID:        r.Client.TaxID,
			Address:      r.Client.Address,
			TaxCondition: r.Client.TaxCondition,
		},
		Items: items,
	}
}

// ListInvoicesQuery holds GET /invoices filters. Dates accept RFC3339 or
// YYYY-MM-DD and are parsed by the handler.
type ListInvoicesQuery struct {
	Type string `form:"type"`
	From string `form:"from"`
	To   string `form:"to"`
}

// --- Responses ---

// LineItemResponse is one billed line of an issued invoice.
type LineItemResponse struct {
	Description string `json:"description"`
	Quantity    Amount `json:"quantity"`
	UnitPrice   Amount `json:"unitPrice"`
}

// InvoiceResponse is the wire form of an issued invoice.
type InvoiceResponse struct {
	ID            int64              `json:"id"`
	Type          string             `json:"type"`
	Number        string             `json:"number"`
	PointOfSale   int                `json:"pointOfSale"`
	AuthCode      string             `json:"authCode"`
	IssuedAt      time.Time          `json:"issuedAt"`
	AuthExpiresAt time.Time          `json:"authExpiresAt"`
	Client        ClientDTO          `json:"client"`
	Items         []LineItemResponse `json:"items"`
	Subtotal      Amount             `json:"subtotal"`
	Tax           Amount             `json:"tax"`
	Total         Amount             `json:"total"`
	Status        string             `json:"status"`
}

// FromInvoice creates InvoiceResponse from the domain invoice.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, LineItemResponse{
			Description: it.Description,
			Quantity:    exact(it.Quantity),
			UnitPrice:   exact(it.UnitPrice),
		})
	}
	return InvoiceResponse{
		ID:            inv.ID,
		Type:          string(inv.Type),
		Number:        inv.Number,
		PointOfSale:   inv.PointOfSale,
		AuthCode:      inv.AuthCode,
		IssuedAt:      inv.IssuedAt,
		AuthExpiresAt: inv.AuthExpiresAt,
		Client: ClientDTO{
			LegalName:    inv.Client.LegalName,
			TaxID:        inv.Client.TaxID,
			Address:      inv.Client.Address,
			TaxCondition: inv.Client.TaxCondition,
		},
		Items:    items,
		Subtotal: money(inv.Subtotal),
		Tax:      money(inv.Tax),
		Total:    money(inv.Total),
		Status:   inv.Status,
	}
}

// InvoiceListResponse is the body of GET /invoices.
type InvoiceListResponse struct {
	Total    int               `json:"total"`
	Invoices []InvoiceResponse `json:"invoices"`
}

// FromInvoices wraps a list result.
func FromInvoices(list []*invoice.Invoice) InvoiceListResponse {
	out := InvoiceListResponse{Total: len(list), Invoices: make([]InvoiceResponse, 0, len(list))}
	for _, inv := range list {
		out.Invoices = append(out.Invoices, FromInvoice(inv))
	}
	return out
}

// VerificationResponse is the body of GET /auth-codes/:code.
type VerificationResponse struct {
	Valid   bool             `json:"valid"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
	Reason  string           `json:"reason"`
	Message string           `json:"message"`
}

var verificationMessages = map[string]string{
	invoice.ReasonValid:    "authorization code is valid",
	invoice.ReasonExpired:  "authorization code has expired",
	invoice.ReasonNotFound: "authorization code not found",
}

// FromVerification creates VerificationResponse.
func FromVerification(v invoice.Verification) VerificationResponse {
	out := VerificationResponse{
		Valid:   v.Valid,
		Reason:  v.Reason,
		Message: verificationMessages[v.Reason],
	}
	if v.Invoice != nil {
		inv := FromInvoice(v.Invoice)
		out.Invoice = &inv
	}
	return out
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Count       int            `json:"count"`
	CountByType map[string]int `json:"countByType"`
	TotalAmount Amount         `json:"totalAmount"`
}

// FromStats creates StatsResponse.
func FromStats(s invoice.Stats) StatsResponse {
	byType := make(map[string]int, len(s.CountByType))
	for t, n := range s.CountByType {
		byType[string(t)] = n
	}
	return StatsResponse{
		Count:       s.Count,
		CountByType: byType,
		TotalAmount: money(s.TotalAmount),
	}
}

// PointsOfSaleResponse is the body of GET /points-of-sale.
type PointsOfSaleResponse []int
