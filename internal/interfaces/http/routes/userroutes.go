package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/interfaces/http/handlers"
	"github.com/reque-io/reque/internal/interfaces/http/middleware"
	"github.com/reque-io/reque/internal/shared/authorization"
)

// UserRouteConfig holds dependencies for account management routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures account management routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group("/api/v1/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		users.GET("", cfg.PermissionMiddleware.RequirePermission("users", "list"), cfg.UserHandler.ListUsers)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		users.GET("/assignable", authorization.RequireStaff(), cfg.UserHandler.ListAssignable)
		users.PUT("/me", cfg.UserHandler.UpdateProfile)

		// Generic parameterized routes (must come LAST)
		users.PUT("/:id/role", cfg.PermissionMiddleware.RequirePermission("users", "update"), cfg.UserHandler.ChangeRole)
		users.PUT("/:id/status", cfg.PermissionMiddleware.RequirePermission("users", "update"), cfg.UserHandler.ChangeStatus)
	}
}
