// Package pdf renders issued invoices as printable PDF documents.
//
// Two layouts are available: "canvas" places every element at absolute
// coordinates with gofpdf, "grid" composes rows and columns with maroto.
// Both consume the same document view, so they print the same content.
package pdf

import (
	"context"
	"fmt"
	"sort"

	"facturador/internal/core/apperror"
	"facturador/internal/domain/invoice"
)

// Layout names.
const (
	LayoutCanvas = "canvas"
	LayoutGrid   = "grid"
)

// Renderer turns an invoice into PDF bytes.
type Renderer interface {
	// Layout returns the name the renderer is registered under.
	Layout() string
	Render(ctx context.Context, inv *invoice.Invoice) ([]byte, error)
}

// Letterhead is the static issuer block printed on every document.
type Letterhead struct {
	Name         string
	TaxID        string
	Address      string
	Phone        string
	TaxCondition string
}

// DefaultLetterhead is used when no issuer is configured.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		Name:         "MI EMPRESA S.A.",
		TaxID:        "30-12345678-9",
		Address:      "Av. Principal 1234, CABA",
		Phone:        "+54 11 1234-5678",
		TaxCondition: "Responsable Inscripto",
	}
}

// Registry resolves a layout name to a renderer.
type Registry struct {
	renderers     map[string]Renderer
	defaultLayout string
}

// NewRegistry registers renderers under their layout names.
// defaultLayout must be one of them.
func NewRegistry(defaultLayout string, renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, rn := range renderers {
		r.renderers[rn.Layout()] = rn
	}
	if _, ok := r.renderers[defaultLayout]; !ok {
		return nil, fmt.Errorf("pdf: default layout %q is not registered", defaultLayout)
	}
	r.defaultLayout = defaultLayout
	return r, nil
}

// Get returns the renderer for layout; an empty layout selects the default.
func (r *Registry) Get(layout string) (Renderer, error) {
	if layout == "" {
		layout = r.defaultLayout
	}
	rn, ok := r.renderers[layout]
	if !ok {
		return nil, apperror.NewValidation("unknown document layout").
			WithDetail("layout", layout).
			WithDetail("allowed", r.Layouts())
	}
	return rn, nil
}

// Layouts lists registered layout names in order.
func (r *Registry) Layouts() []string {
	out := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Filename is the attachment name for a rendered invoice.
func Filename(inv *invoice.Invoice) string {
	return fmt.Sprintf("invoice_%s.pdf", inv.Number)
}
