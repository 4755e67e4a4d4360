package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/infrastructure/pdf"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.Invoicing.PointsOfSale)
	assert.Equal(t, 240*time.Hour, cfg.Invoicing.AuthValidity)
	assert.Equal(t, "legacy", cfg.Invoicing.TypeBMode)
	assert.Equal(t, 24*time.Hour, cfg.Invoicing.IdempotencyTTL)
	assert.Equal(t, pdf.LayoutCanvas, cfg.Document.Layout)
	assert.Equal(t, pdf.DefaultLetterhead(), cfg.Issuer.Letterhead())

	rate, err := cfg.Invoicing.Rate()
	require.NoError(t, err)
	assert.Equal(t, "0.21", rate.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FACTURADOR_APP_PORT", "9090")
	t.Setenv("FACTURADOR_INVOICING_POINTS_OF_SALE", "1,2,7")
	t.Setenv("FACTURADOR_INVOICING_TYPE_B_MODE", "inclusive")
	t.Setenv("FACTURADOR_DOCUMENT_LAYOUT", "grid")
	t.Setenv("FACTURADOR_ISSUER_NAME", "OTRA EMPRESA S.R.L.")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []int{1, 2, 7}, cfg.Invoicing.PointsOfSale)
	assert.Equal(t, "inclusive", cfg.Invoicing.TypeBMode)
	assert.Equal(t, pdf.LayoutGrid, cfg.Document.Layout)
	assert.Equal(t, "OTRA EMPRESA S.R.L.", cfg.Issuer.Name)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: 7000
  env: production
invoicing:
  points_of_sale: [10, 20]
  auth_validity: 48h
document:
  cache_ttl: 5m
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.App.Port)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, []int{10, 20}, cfg.Invoicing.PointsOfSale)
	assert.Equal(t, 48*time.Hour, cfg.Invoicing.AuthValidity)
	assert.Equal(t, 5*time.Minute, cfg.Document.CacheTTL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"rate not a number": {"FACTURADOR_INVOICING_TAX_RATE", "lots"},
		"rate out of range": {"FACTURADOR_INVOICING_TAX_RATE", "1.5"},
		"unknown layout":    {"FACTURADOR_DOCUMENT_LAYOUT", "fancy"},
		"unknown B mode":    {"FACTURADOR_INVOICING_TYPE_B_MODE", "exclusive"},
		"duplicate pos":     {"FACTURADOR_INVOICING_POINTS_OF_SALE", "1,1"},
		"bad log level":     {"FACTURADOR_LOG_LEVEL", "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(env[0], env[1])
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
