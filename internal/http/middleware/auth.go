package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shiptix/internal/domain"
	"shiptix/internal/services"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

type TokenParser interface {
	ParseToken(raw string) (services.Claims, error)
}

// RequireAuth validates the bearer token and sets userID and userRole on
// the context for RequireRoles.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "token tidak ditemukan",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}

		claims, err := parser.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      err.Error(),
				"code":       domain.Code(err),
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// CurrentUser returns what RequireAuth stored.
func CurrentUser(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{UserID: c.GetString(userIDKey), Role: c.GetString(userRoleKey)}
}
