// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/pkg/receipt"
)

// OrderHandler exposes order history and receipts
type OrderHandler struct {
	api      *backend.Client
	receipts *receipt.Service
	logger   *logrus.Logger
}

// NewOrderHandler creates a new order handler. A nil receipt service
// disables receipt downloads.
func NewOrderHandler(api *backend.Client, receipts *receipt.Service, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		api:      api,
		receipts: receipts,
		logger:   logger,
	}
}

// GetMyOrders handles GET /orders/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.api.ListMyOrders(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  order.FromBackendList(orders),
		"count": len(orders),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	fetched, err := h.api.GetOrder(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order.FromBackend(fetched)})
}

// GetReceipt handles GET /orders/:id/receipt and streams a PDF
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	if h.receipts == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Receipts are not enabled"})
		return
	}

	fetched, err := h.api.GetOrder(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.receipts.Generate(order.FromBackend(fetched))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"order_id": fetched.ID,
			"error":    err.Error(),
		}).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", fetched.ID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// GetAllOrders handles GET /admin/orders
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.api.ListAllOrders(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  order.FromBackendList(orders),
		"count": len(orders),
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.api.UpdateOrderStatus(c.Request.Context(), middleware.TokenFromContext(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data":    order.FromBackend(updated),
	})
}
