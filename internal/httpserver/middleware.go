package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/cart"
	"digitalshop/internal/domain"
)

const (
	sessionHeader = "X-Session-ID"

	ctxUserKey  = "currentUser"
	ctxStoreKey = "cartStore"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireUser rejects requests without a valid access token.
func requireUser(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		u, err := users.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// optionalUser resolves the user when a token is present but lets anonymous
// requests through.
func optionalUser(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if u, err := users.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(ctxUserKey, u)
			}
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || u.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// requireSession resolves the cart store for the session named in the
// X-Session-ID header.
func requireSession(carts *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
			return
		}
		store, ok := carts.Get(c.Request.Context(), id)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown cart session"})
			return
		}
		c.Set(ctxStoreKey, store)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func currentStore(c *gin.Context) *cart.Store {
	v, ok := c.Get(ctxStoreKey)
	if !ok {
		return nil
	}
	s, _ := v.(*cart.Store)
	return s
}
