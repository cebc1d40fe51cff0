// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// AuthHandler proxies authentication to the upstream backend. On sign-in
// it also reconciles the local cart with the account's canonical cart and
// advances any pending checkout past the Account step.
type AuthHandler struct {
	api      *backend.Client
	repo     cart.Repository
	sessions *checkout.Manager
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(api *backend.Client, repo cart.Repository, sessions *checkout.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		api:      api,
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.api.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.afterSignIn(c, resp.Token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    resp,
	})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.api.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.afterSignIn(c, resp.Token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    resp,
	})
}

// GetProfile handles GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.api.Me(c.Request.Context(), middleware.TokenFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateProfile handles PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	user, err := h.api.UpdateProfile(c.Request.Context(), middleware.TokenFromContext(c), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    user,
	})
}

// afterSignIn reconciles local state with the freshly authenticated
// account: the remote cart overwrites the local one, and a pending
// checkout moves past the Account step. Both are best-effort.
func (h *AuthHandler) afterSignIn(c *gin.Context, token string) {
	sessionID := middleware.SessionIDFromContext(c)

	store, err := cart.NewStore(c.Request.Context(), h.repo, sessionID, h.logger)
	if err == nil {
		svc := cart.NewSyncService(store, h.api, token, h.logger)
		if err := svc.Fetch(c.Request.Context()); err != nil {
			h.logger.WithField("error", err.Error()).Warn("Cart reconciliation after sign-in failed")
		}
	}

	if session := h.sessions.Get(sessionID); session != nil {
		if err := session.MarkAuthenticated(); err != nil {
			h.logger.WithField("error", err.Error()).Warn("Could not advance checkout after sign-in")
		}
	}
}
