// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// CheckoutHandler drives the checkout flow endpoints
type CheckoutHandler struct {
	sessions     *checkout.Manager
	repo         cart.Repository
	api          *backend.Client
	orchestrator *order.Orchestrator
	logger       *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *checkout.Manager, repo cart.Repository, api *backend.Client, orchestrator *order.Orchestrator, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:     sessions,
		repo:         repo,
		api:          api,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Start handles POST /checkout: it opens a fresh checkout session. A new
// session always replaces the previous one for this device.
func (h *CheckoutHandler) Start(c *gin.Context) {
	svc, err := h.cartService(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if svc.Store().IsEmpty() {
		respondError(c, checkout.NewError(checkout.KindEmptyCart, "cart is empty", nil))
		return
	}

	authenticated := middleware.TokenFromContext(c) != ""
	session := h.sessions.Begin(middleware.SessionIDFromContext(c), authenticated)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started",
		"data":    session.Snapshot(),
	})
}

// Get handles GET /checkout
func (h *CheckoutHandler) Get(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session.Snapshot()})
}

// Abandon handles DELETE /checkout. The cart is untouched; only the flow
// state is dropped.
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	h.sessions.End(middleware.SessionIDFromContext(c))
	c.JSON(http.StatusOK, gin.H{"message": "Checkout abandoned"})
}

// SetShipping handles PUT /checkout/shipping
func (h *CheckoutHandler) SetShipping(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var form checkout.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Shipping details are invalid",
			"fields": fieldErrors,
		})
		return
	}

	if err := session.SetShipping(form); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping details saved",
		"data":    session.Snapshot(),
	})
}

// SetPaymentMethod handles PUT /checkout/payment-method
func (h *CheckoutHandler) SetPaymentMethod(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var req struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := session.SetPaymentMethod(req.Method); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method selected",
		"data":    session.Snapshot(),
	})
}

// Advance handles POST /checkout/advance: it moves the flow to the named
// step, enforcing the transition table and the empty-cart guard.
func (h *CheckoutHandler) Advance(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var req struct {
		Step string `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	step, ok := parseStep(req.Step)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown checkout step"})
		return
	}

	// An emptied cart invalidates any forward progress
	if step != checkout.StepConfirmation {
		svc, err := h.cartService(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if svc.Store().IsEmpty() {
			respondError(c, checkout.NewError(checkout.KindEmptyCart, "cart is empty", nil))
			return
		}
	}

	if err := session.Advance(step); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session.Snapshot()})
}

// PlaceOrder handles POST /checkout/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var req struct {
		Card  *checkout.CardDetails `json:"card,omitempty"`
		UPIID string                `json:"upi_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := h.cartService(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.orchestrator.PlaceOrder(
		c.Request.Context(),
		middleware.TokenFromContext(c),
		session,
		svc,
		order.PlaceRequest{Card: req.Card, UPIID: req.UPIID},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed",
		"data":    result,
	})
}

// ConfirmUPI handles POST /checkout/confirm-upi. Safe to retry until the
// payment verifies.
func (h *CheckoutHandler) ConfirmUPI(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var req struct {
		UPIID string `json:"upi_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := h.cartService(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.orchestrator.ConfirmUPI(
		c.Request.Context(),
		middleware.TokenFromContext(c),
		session,
		svc,
		req.UPIID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment confirmed",
		"data":    result,
	})
}

// CompleteWidget handles POST /checkout/complete-widget with the hosted
// widget's callback payload
func (h *CheckoutHandler) CompleteWidget(c *gin.Context) {
	session := h.sessions.Get(middleware.SessionIDFromContext(c))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
		return
	}

	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	svc, err := h.cartService(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.orchestrator.CompleteWidget(
		c.Request.Context(),
		middleware.TokenFromContext(c),
		session,
		svc,
		payload,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment completed",
		"data":    result,
	})
}

// Private helper methods

func (h *CheckoutHandler) cartService(c *gin.Context) (*cart.SyncService, error) {
	store, err := cart.NewStore(c.Request.Context(), h.repo, middleware.SessionIDFromContext(c), h.logger)
	if err != nil {
		return nil, err
	}
	return cart.NewSyncService(store, h.api, middleware.TokenFromContext(c), h.logger), nil
}

func parseStep(name string) (checkout.Step, bool) {
	switch name {
	case "account":
		return checkout.StepAccount, true
	case "shipping":
		return checkout.StepShipping, true
	case "payment":
		return checkout.StepPayment, true
	case "confirmation":
		return checkout.StepConfirmation, true
	}
	return 0, false
}
