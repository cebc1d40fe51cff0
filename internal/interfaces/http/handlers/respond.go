// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
)

// respondError maps domain and upstream errors to HTTP responses. The
// shopper-safe message goes in the body; underlying causes stay in logs.
func respondError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message})
		return
	}

	var netErr *backend.NetworkError
	if errors.As(err, &netErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Could not reach the store. Please try again.",
		})
		return
	}

	if errors.Is(err, cart.ErrInsufficientStock) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, cart.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var checkoutErr *checkout.Error
	if errors.As(err, &checkoutErr) {
		c.JSON(checkoutStatus(checkoutErr.Kind), gin.H{
			"error": checkoutErr.Message,
			"kind":  string(checkoutErr.Kind),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Something went wrong. Please try again.",
	})
}

func checkoutStatus(kind checkout.ErrorKind) int {
	switch kind {
	case checkout.KindValidation, checkout.KindEmptyCart:
		return http.StatusUnprocessableEntity
	case checkout.KindInvalidTransition, checkout.KindBusy:
		return http.StatusConflict
	case checkout.KindOrderCreationFailed,
		checkout.KindPaymentIntentFailed,
		checkout.KindPaymentProcessingFailed:
		return http.StatusBadGateway
	case checkout.KindPaymentVerificationFailed:
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}
