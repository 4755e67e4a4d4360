// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/cache"
	"facturador/internal/infrastructure/http/v1/handlers"
	"facturador/internal/infrastructure/http/v1/middleware"
	"facturador/internal/infrastructure/metrics"
	"facturador/internal/infrastructure/pdf"
	"facturador/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// App identifies the service in /health/info
	App handlers.AppInfo

	// Logger for request logging
	Logger *logger.Logger

	// Ledger is the invoice store all handlers share
	Ledger *invoice.Ledger

	// Verifier answers authorization code lookups
	Verifier *invoice.Verifier

	// Renderers resolves ?layout= to a document renderer
	Renderers *pdf.Registry

	// Idempotency is optional; when set, POST /invoices honours X-Idempotency-Key
	Idempotency *cache.IdempotencyStore

	// Metrics is optional; when set, requests are measured and /metrics is exposed
	Metrics *metrics.Metrics

	// Development enables gin debug mode
	Development bool
}

// Endpoints lists the public API for /health/info.
var Endpoints = []string{
	"POST /api/v1/invoices",
	"GET /api/v1/invoices",
	"GET /api/v1/invoices/:id",
	"GET /api/v1/invoices/:id/document",
	"GET /api/v1/points-of-sale",
	"GET /api/v1/auth-codes/:code",
	"GET /api/v1/stats",
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.App, cfg.Ledger, cfg.Renderers, Endpoints)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	invoiceHandler := handlers.NewInvoiceHandler(base, cfg.Ledger, cfg.Renderers)
	verificationHandler := handlers.NewVerificationHandler(base, cfg.Verifier)

	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		if cfg.Idempotency != nil {
			invoices.Use(middleware.Idempotency(cfg.Idempotency))
		}
		registerInvoiceRoutes(invoices, invoiceHandler)
		v1.GET("/points-of-sale", invoiceHandler.PointsOfSale)
		v1.GET("/auth-codes/:code", verificationHandler.Verify)
		v1.GET("/stats", invoiceHandler.Stats)
	}

	return router
}
