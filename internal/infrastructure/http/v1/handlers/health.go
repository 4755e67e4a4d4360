package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/pdf"
)

// AppInfo identifies the running service.
type AppInfo struct {
	Name    string
	Version string
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	info      AppInfo
	ledger    *invoice.Ledger
	renderers *pdf.Registry
	endpoints []string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(info AppInfo, ledger *invoice.Ledger, renderers *pdf.Registry, endpoints []string) *HealthHandler {
	return &HealthHandler{info: info, ledger: ledger, renderers: renderers, endpoints: endpoints}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ledger == nil || h.renderers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{"ledger": "not initialized"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"ledger":    "healthy",
			"documents": "healthy",
		},
	})
}

// Info returns application information and the public endpoints.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	body := gin.H{
		"app":       h.info.Name,
		"version":   h.info.Version,
		"endpoints": h.endpoints,
	}
	if h.ledger != nil {
		body["invoices"] = h.ledger.Count()
		body["pointsOfSale"] = h.ledger.PointsOfSale()
	}
	if h.renderers != nil {
		body["documentLayouts"] = h.renderers.Layouts()
	}
	c.JSON(http.StatusOK, body)
}
