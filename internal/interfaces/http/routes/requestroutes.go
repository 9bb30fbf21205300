package routes

import (
	"github.com/gin-gonic/gin"

	requesthandlers "github.com/reque-io/reque/internal/interfaces/http/handlers/request"
	"github.com/reque-io/reque/internal/interfaces/http/middleware"
)

// RequestRouteConfig holds dependencies for request tracking routes.
type RequestRouteConfig struct {
	RequestHandler       *requesthandlers.RequestHandler
	CommentHandler       *requesthandlers.CommentHandler
	AttachmentHandler    *requesthandlers.AttachmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupRequestRoutes configures request, comment, and attachment routes.
// Coarse role gates live here via the policy middleware; ownership and
// assignment decisions stay inside the usecases.
func SetupRequestRoutes(engine *gin.Engine, cfg *RequestRouteConfig) {
	requests := engine.Group("/api/v1/requests")
	requests.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		requests.POST("",
			cfg.PermissionMiddleware.RequirePermission("requests", "create"),
			cfg.RequestHandler.Create)
		requests.GET("",
			cfg.RequestHandler.List)
		requests.GET("/stats",
			cfg.RequestHandler.Stats)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		requests.PUT("/:id/status",
			cfg.RequestHandler.ChangeStatus)
		requests.PUT("/:id/priority",
			cfg.RequestHandler.ChangePriority)
		requests.PUT("/:id/assignee",
			cfg.RequestHandler.Assign)
		requests.GET("/:id/permissions",
			cfg.RequestHandler.Permissions)
		requests.GET("/:id/activity",
			cfg.RequestHandler.Activity)
		requests.GET("/:id/comments",
			cfg.CommentHandler.List)
		requests.POST("/:id/comments",
			cfg.CommentHandler.Add)
		requests.GET("/:id/attachments",
			cfg.AttachmentHandler.List)
		requests.POST("/:id/attachments",
			cfg.AttachmentHandler.Upload)

		// Generic parameterized routes (must come LAST)
		requests.GET("/:id",
			cfg.RequestHandler.Get)
		requests.PUT("/:id",
			cfg.RequestHandler.Update)
		requests.DELETE("/:id",
			cfg.PermissionMiddleware.RequirePermission("requests", "delete"),
			cfg.RequestHandler.Delete)
	}

	comments := engine.Group("/api/v1/comments")
	comments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		comments.PUT("/:id", cfg.CommentHandler.Update)
		comments.DELETE("/:id", cfg.CommentHandler.Delete)
	}

	attachments := engine.Group("/api/v1/attachments")
	attachments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		attachments.GET("/:id/download", cfg.AttachmentHandler.Download)
		attachments.DELETE("/:id", cfg.AttachmentHandler.Delete)
	}
}
