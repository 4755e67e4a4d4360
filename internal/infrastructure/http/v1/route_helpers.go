package v1

import (
	"github.com/gin-gonic/gin"
)

// InvoiceRouteHandler defines the routes served under /invoices.
type InvoiceRouteHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Document(c *gin.Context)
}

// registerInvoiceRoutes wires the invoice collection. Invoices are immutable,
// so there are no update or delete routes.
func registerInvoiceRoutes(group *gin.RouterGroup, handler InvoiceRouteHandler) {
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.GET("/:id/document", handler.Document)
}
