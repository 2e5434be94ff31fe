package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hamisi/atm-backend/internal/core/ports/services"
	"github.com/hamisi/atm-backend/internal/middleware"
	"github.com/hamisi/atm-backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	registerValidations()

	authLimiter, err := middleware.NewAuthRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("invalid auth rate limit %q: %w", cfg.AuthRateLimit, err)
	}

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	registerAuthRoutes(api, cfg, services.Auth, middleware.RateLimit(authLimiter))
	registerAccountRoutes(api, services.Account)
	registerLedgerRoutes(api, services.Ledger)

	// Maintenance workflows need a technician session token.
	registerMaintenanceRoutes(api, services.Maintenance,
		middleware.AuthMiddleware(cfg.JWTSecret, middleware.RoleTechnician))

	return nil
}
