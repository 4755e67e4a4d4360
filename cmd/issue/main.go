// Package main is an offline issuer: it authorizes one invoice request read
// from JSON and writes the rendered document, without starting the API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin/binding"
	"github.com/urfave/cli/v2"

	"facturador/internal/config"
	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/http/v1/dto"
	"facturador/internal/infrastructure/numerator"
	"facturador/internal/infrastructure/pdf"
	"facturador/internal/server"
)

func main() {
	app := &cli.App{
		Name:      "facturador-issue",
		Usage:     "authorize an invoice request and render its document",
		ArgsUsage: "[request.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
			&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "document layout (canvas or grid)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path or directory"},
			&cli.Int64Flag{Name: "next-number", Usage: "sequence number to start the invoice type at"},
			&cli.BoolFlag{Name: "json", Usage: "print the authorized invoice as JSON"},
		},
		Action: issue,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "facturador-issue: %v\n", err)
		os.Exit(1)
	}
}

func issue(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := server.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	req, err := readRequest(c.Args().First())
	if err != nil {
		return err
	}

	seq := numerator.New()
	if n := c.Int64("next-number"); n > 0 {
		if err := seq.SetNextNumber(c.Context, req.Type, n); err != nil {
			return err
		}
	}

	ledger, err := server.BuildLedger(cfg, log, seq)
	if err != nil {
		return err
	}
	inv, err := ledger.Create(c.Context, req.ToDomain())
	if err != nil {
		return err
	}

	renderers, err := server.NewRenderers(cfg)
	if err != nil {
		return err
	}
	renderer, err := renderers.Get(c.String("layout"))
	if err != nil {
		return err
	}
	doc, err := renderer.Render(c.Context, inv)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path := outputPath(c.String("out"), inv)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return err
	}
	log.Infow("invoice issued", "number", inv.Number, "auth_code", inv.AuthCode, "file", path)

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromInvoice(inv))
	}
	return nil
}

// readRequest decodes a create request from path, or stdin when path is empty or "-".
func readRequest(path string) (dto.CreateInvoiceRequest, error) {
	var req dto.CreateInvoiceRequest

	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// outputPath resolves --out: empty means the default filename in the
// working directory, an existing directory gets the default filename inside it.
func outputPath(out string, inv *invoice.Invoice) string {
	name := pdf.Filename(inv)
	if out == "" {
		return name
	}
	if st, err := os.Stat(out); err == nil && st.IsDir() {
		return filepath.Join(out, name)
	}
	return out
}
