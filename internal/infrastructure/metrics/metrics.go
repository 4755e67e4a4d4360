// Package metrics exposes Prometheus instruments for invoice issuance and
// the HTTP surface.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"facturador/internal/domain/invoice"
)

// Metrics holds every instrument and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	invoicesIssued *prometheus.CounterVec
	invoicedAmount *prometheus.CounterVec
	invoiceTotal   *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the instruments on a private registry together with the
// standard Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invoicesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_invoices_issued_total",
			Help: "Authorized invoices by type and point of sale.",
		}, []string{"type", "point_of_sale"}),
		invoicedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_invoiced_amount_total",
			Help: "Sum of invoice totals by type.",
		}, []string{"type"}),
		invoiceTotal: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facturador_invoice_total_amount",
			Help:    "Distribution of invoice totals.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facturador_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facturador_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.invoicesIssued,
		m.invoicedAmount,
		m.invoiceTotal,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordInvoice counts one authorized invoice.
func (m *Metrics) RecordInvoice(inv *invoice.Invoice) {
	if m == nil {
		return
	}
	t := string(inv.Type)
	m.invoicesIssued.WithLabelValues(t, strconv.Itoa(inv.PointOfSale)).Inc()
	amount := inv.Total.InexactFloat64()
	m.invoicedAmount.WithLabelValues(t).Add(amount)
	m.invoiceTotal.WithLabelValues(t).Observe(amount)
}

// Instrument subscribes to ledger creations and exports the ledger size.
func (m *Metrics) Instrument(l *invoice.Ledger) {
	l.Hooks().OnAfterCreate(func(_ context.Context, inv *invoice.Invoice) error {
		m.RecordInvoice(inv)
		return nil
	})
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "facturador_ledger_invoices",
		Help: "Invoices currently held in the ledger.",
	}, func() float64 {
		return float64(l.Count())
	}))
}

// GinMiddleware records request counts and latency per route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
