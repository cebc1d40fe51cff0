// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-gateway/internal/pkg/auth"
)

const (
	sessionCookieName = "storefront_session"
	// The cookie outlives a browsing session so the persisted cart does too
	sessionCookieMaxAge = 30 * 24 * 3600
)

// DeviceSession assigns each client a stable session id via cookie. The id
// keys the persisted cart and the checkout session; it is not tied to the
// authenticated user.
func DeviceSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// BearerToken extracts the backend-issued token from the Authorization
// header, when present, and records its claims. The gateway never verifies
// the signature; the backend rejects tampered tokens on the proxied call.
// Expired tokens are dropped so the session falls back to guest behavior.
func BearerToken(inspector *auth.Inspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := inspector.Inspect(tokenString)
		if err != nil || claims.IsExpired() {
			c.Next()
			return
		}

		c.Set("token", tokenString)
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("is_admin", claims.IsAdmin())

		c.Next()
	}
}

// RequireAuth rejects requests without a usable bearer token
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("token"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdminFromContext(c) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionIDFromContext extracts the device session id from gin context
func SessionIDFromContext(c *gin.Context) string {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	return sessionID.(string)
}

// TokenFromContext extracts the bearer token, empty for guests
func TokenFromContext(c *gin.Context) string {
	token, exists := c.Get("token")
	if !exists {
		return ""
	}
	return token.(string)
}

// IsAdminFromContext checks if the request carries an admin token
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	return isAdmin.(bool)
}
