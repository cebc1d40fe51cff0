// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. Every request rebuilds the cart
// service from the persisted blob, so concurrent clients on the same
// session id see last-write-wins semantics.
type CartHandler struct {
	repo   cart.Repository
	api    *backend.Client
	logger *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(repo cart.Repository, api *backend.Client, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		repo:   repo,
		api:    api,
		logger: logger,
	}
}

// GetCart handles GET /cart. For authenticated shoppers the backend cart
// is authoritative, so a fetch reconcile runs first; a fetch failure is
// logged and the local cart is served as-is.
func (h *CartHandler) GetCart(c *gin.Context) {
	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if middleware.TokenFromContext(c) != "" {
		if err := svc.Fetch(c.Request.Context()); err != nil {
			h.logger.WithField("error", err.Error()).Warn("Cart fetch failed, serving local cart")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartPayload(svc),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	// The catalog is the source of the product snapshot stored in the cart
	product, err := h.api.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.AddItem(c.Request.Context(), toCartProduct(product), req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartPayload(svc),
	})
}

// UpdateItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    cartPayload(svc),
	})
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.RemoveItem(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartPayload(svc),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartPayload(svc),
	})
}

// SyncCart handles POST /cart/sync: it pulls the canonical remote cart and
// overwrites the local one. Called by the UI after sign-in.
func (h *CartHandler) SyncCart(c *gin.Context) {
	svc, err := h.service(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart synced successfully",
		"data":    cartPayload(svc),
	})
}

// service builds the per-request cart service from the device session
func (h *CartHandler) service(c *gin.Context) (*cart.SyncService, error) {
	sessionID := middleware.SessionIDFromContext(c)
	token := middleware.TokenFromContext(c)

	store, err := cart.NewStore(c.Request.Context(), h.repo, sessionID, h.logger)
	if err != nil {
		return nil, err
	}
	return cart.NewSyncService(store, h.api, token, h.logger), nil
}

func cartPayload(svc *cart.SyncService) gin.H {
	totals := svc.Totals()
	return gin.H{
		"items":      svc.Items(),
		"item_count": totals.ItemCount,
		"subtotal":   totals.Subtotal,
	}
}

func toCartProduct(p *backend.Product) cart.Product {
	return cart.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Discount:      p.Discount,
		Rating:        p.Rating,
		Stock:         p.Stock,
		Tags:          p.Tags,
	}
}
