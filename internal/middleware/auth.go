package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"medidex/internal/auth"
	"medidex/internal/service"
)

// Context keys set by AuthGuard.
const (
	ContextClaims  = "claims"
	ContextAccount = "account"
)

// AuthGuard validates the bearer credential, checks the account is still
// active, and enforces the role policy for op. Downstream handlers can read
// the resolved claims and account from the gin context.
func AuthGuard(secret string, staff *service.StaffService, op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		acct, err := staff.Verify(ctx, claims)
		if err != nil {
			if errors.Is(err, service.ErrAccountInactive) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is inactive"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !Allowed(op, acct.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextAccount, acct)
		c.Next()
	}
}
