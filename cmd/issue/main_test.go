package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/domain/invoice"
)

func TestReadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	body := `{"type":"A","pointOfSale":1,"client":{"legalName":"ACME","taxCondition":"RI"},"items":[{"description":"Widget","quantity":2,"unitPrice":100}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	req, err := readRequest(path)
	require.NoError(t, err)
	assert.Equal(t, "A", req.Type)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "200", req.ToDomain().Items[0].Amount().String())
}

func TestReadRequest_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":`), 0o600))

	_, err := readRequest(path)
	assert.ErrorContains(t, err, "decode request")
}

func TestOutputPath(t *testing.T) {
	inv := &invoice.Invoice{Number: "00001-00000007"}
	dir := t.TempDir()

	assert.Equal(t, "invoice_00001-00000007.pdf", outputPath("", inv))
	assert.Equal(t, filepath.Join(dir, "invoice_00001-00000007.pdf"), outputPath(dir, inv))
	assert.Equal(t, filepath.Join(dir, "x.pdf"), outputPath(filepath.Join(dir, "x.pdf"), inv))
}
