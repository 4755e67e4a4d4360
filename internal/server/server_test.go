package server

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"facturador/internal/config"
	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/pdf"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "facturador", Env: "test", Port: 8080, ShutdownTimeout: time.Second},
		Log: config.LogConfig{Level: "error"},
		Invoicing: config.InvoicingConfig{
			PointsOfSale: []int{1, 2},
			TaxRate:      "0.21",
			AuthValidity: invoice.DefaultAuthValidity,
			TypeBMode:    "inclusive",
		},
		Issuer:   config.IssuerConfig{Name: "MI EMPRESA S.A.", TaxID: "30-12345678-9"},
		Document: config.DocumentConfig{Layout: pdf.LayoutGrid, CacheTTL: time.Minute},
	}
}

func TestModule_Validates(t *testing.T) {
	err := fx.ValidateApp(fx.Supply(testConfig()), Module)
	assert.NoError(t, err)
}

func TestProviders_WireLedgerAndRouter(t *testing.T) {
	var (
		engine *gin.Engine
		ledger *invoice.Ledger
	)
	app := fxtest.New(t,
		fx.Supply(testConfig()),
		Providers,
		fx.Invoke(instrument),
		fx.Populate(&engine, &ledger),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, []int{1, 2}, ledger.PointsOfSale())

	body := `{"type":"B","pointOfSale":2,"client":{"legalName":"C","taxCondition":"CF"},"items":[{"description":"x","quantity":2,"unitPrice":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	// inclusive mode splits the type B total
	assert.Contains(t, w.Body.String(), `"subtotal":200`)
	assert.Contains(t, w.Body.String(), `"tax":42`)

	// default layout is grid
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/1/document", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestGzipHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/big", func(c *gin.Context) {
		c.String(http.StatusOK, string(bytes.Repeat([]byte("factura "), 1000)))
	})

	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	gzhttp.GzipHandler(r).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Len(t, plain, 8000)
}
