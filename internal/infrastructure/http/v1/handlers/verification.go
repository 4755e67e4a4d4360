package handlers

import (
	"github.com/gin-gonic/gin"

	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/http/v1/dto"
)

// VerificationHandler answers authorization code lookups.
type VerificationHandler struct {
	*BaseHandler
	verifier *invoice.Verifier
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(base *BaseHandler, verifier *invoice.Verifier) *VerificationHandler {
	return &VerificationHandler{BaseHandler: base, verifier: verifier}
}

// Verify reports whether an authorization code exists and is unexpired.
// Unknown codes are a normal answer, not an error.
// GET /auth-codes/:code
func (h *VerificationHandler) Verify(c *gin.Context) {
	result := h.verifier.Verify(c.Request.Context(), c.Param("code"))
	h.OK(c, dto.FromVerification(result))
}
