package server

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitup/internal/auth"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/models"
)

const claimsKey = "claims"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		keyvals := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP request", keyvals...)
		} else {
			logger.Info("HTTP request", keyvals...)
		}
	}
}

// authenticate requires a valid bearer token and stores its claims on the context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			fail(c, http.StatusUnauthorized, "authentication required")
			return
		}
		claims, err := s.issuer.Validate(strings.TrimSpace(token))
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// authorize rejects callers whose role is not in roles. It must run after authenticate.
func authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, claimsFrom(c).Role) {
			abort(c, errForbidden)
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return &auth.Claims{}
	}
	claims, _ := v.(*auth.Claims)
	if claims == nil {
		return &auth.Claims{}
	}
	return claims
}

func ownerID(c *gin.Context) string {
	return claimsFrom(c).OwnerID
}
