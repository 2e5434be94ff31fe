package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hamisi/atm-backend/internal/utils"
)

// RoleTechnician is the role claim required by maintenance routes.
const RoleTechnician = "technician"

// RoleCustomer is the role claim carried by customer session tokens.
const RoleCustomer = "customer"

// AuthMiddleware validates a Bearer session token and, when requiredRole
// is non-empty, rejects tokens carrying any other role. On success the
// subject ID and role are stored in the request context and the
// request-scoped logger is enriched with them.
func AuthMiddleware(jwtSecret, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseSessionToken(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if requiredRole != "" && claims.Role != requiredRole {
			logger.Warn("Role not permitted for route", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), subjectIDKey, claims.Subject)
		ctx = context.WithValue(ctx, roleKey, claims.Role)

		enriched := logger.With(slog.String("subject_id", claims.Subject), slog.String("role", claims.Role))
		ctx = context.WithValue(ctx, loggerCtxKey, enriched)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
