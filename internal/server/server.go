// Package server assembles the invoicing service with fx: configuration in,
// a running HTTP server out.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"facturador/internal/config"
	corenumerator "facturador/internal/core/numerator"
	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/cache"
	v1 "facturador/internal/infrastructure/http/v1"
	"facturador/internal/infrastructure/http/v1/handlers"
	"facturador/internal/infrastructure/metrics"
	"facturador/internal/infrastructure/numerator"
	"facturador/internal/infrastructure/pdf"
	"facturador/pkg/logger"
)

// Version is stamped at build time with -ldflags "-X facturador/internal/server.Version=...".
var Version = "dev"

// Providers constructs every component without starting anything.
var Providers = fx.Options(
	fx.Provide(
		NewLogger,
		NewLedger,
		NewVerifier,
		NewRenderers,
		NewIdempotencyStore,
		metrics.New,
		NewRouter,
	),
)

// Module is the full service: Providers plus the HTTP server lifecycle.
var Module = fx.Module("facturador.server",
	Providers,
	fx.Invoke(instrument, run),
)

// FxLogger routes fx lifecycle events through the service logger.
func FxLogger(log *logger.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log.Desugar()}
}

// NewLogger builds the service logger from the log section.
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development || cfg.App.IsDevelopment(),
		Fields:      map[string]any{"app": cfg.App.Name, "env": cfg.App.Env},
	})
}

// NewLedger creates the invoice ledger from the invoicing section.
func NewLedger(cfg *config.Config, log *logger.Logger) (*invoice.Ledger, error) {
	return BuildLedger(cfg, log, numerator.New())
}

// BuildLedger is NewLedger with a caller-owned sequence generator.
func BuildLedger(cfg *config.Config, log *logger.Logger, gen corenumerator.Generator) (*invoice.Ledger, error) {
	registry, err := invoice.NewPointOfSaleRegistry(cfg.Invoicing.PointsOfSale)
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Invoicing.Rate()
	if err != nil {
		return nil, err
	}
	calc, err := invoice.NewTaxCalculator(rate, invoice.TypeBMode(cfg.Invoicing.TypeBMode))
	if err != nil {
		return nil, err
	}

	return invoice.NewLedger(invoice.LedgerConfig{
		Registry:   registry,
		Numerator:  gen,
		Calculator: calc,
		Issuer:     invoice.NewIssuer(cfg.Invoicing.AuthValidity),
		Logger:     log,
	})
}

// NewVerifier creates the authorization code verifier.
func NewVerifier(ledger *invoice.Ledger) *invoice.Verifier {
	return invoice.NewVerifier(ledger, time.Now)
}

// NewRenderers registers both document layouts behind a shared cache.
func NewRenderers(cfg *config.Config) (*pdf.Registry, error) {
	rate, err := cfg.Invoicing.Rate()
	if err != nil {
		return nil, err
	}
	head := cfg.Issuer.Letterhead()
	docs := cache.NewDocumentCache(cfg.Document.CacheTTL)

	return pdf.NewRegistry(cfg.Document.Layout,
		pdf.NewCachedRenderer(pdf.NewCanvas(head, rate), docs),
		pdf.NewCachedRenderer(pdf.NewGrid(head, rate), docs),
	)
}

// NewIdempotencyStore keeps create responses for client retries.
func NewIdempotencyStore(cfg *config.Config) *cache.IdempotencyStore {
	return cache.NewIdempotencyStore(cfg.Invoicing.IdempotencyTTL)
}

// NewRouter builds the gin engine.
func NewRouter(
	cfg *config.Config,
	log *logger.Logger,
	ledger *invoice.Ledger,
	verifier *invoice.Verifier,
	renderers *pdf.Registry,
	idem *cache.IdempotencyStore,
	m *metrics.Metrics,
) *gin.Engine {
	return v1.NewRouter(v1.RouterConfig{
		App:         handlers.AppInfo{Name: cfg.App.Name, Version: Version},
		Logger:      log,
		Ledger:      ledger,
		Verifier:    verifier,
		Renderers:   renderers,
		Idempotency: idem,
		Metrics:     m,
		Development: cfg.App.IsDevelopment(),
	})
}

func instrument(m *metrics.Metrics, ledger *invoice.Ledger) {
	m.Instrument(ledger)
}

func run(lc fx.Lifecycle, cfg *config.Config, r *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      gzhttp.GzipHandler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infow("server starting", "addr", ln.Addr().String(), "version", Version)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
