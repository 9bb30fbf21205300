package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/interfaces/http/handlers"
	"github.com/reque-io/reque/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/api/v1/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit("register"), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.RateLimiter.Limit("login"), cfg.AuthHandler.Login)
		auth.POST("/verify-email", cfg.AuthHandler.VerifyEmail)
		auth.GET("/verify-email", cfg.AuthHandler.VerifyEmail)
		auth.POST("/forgot-password", cfg.RateLimiter.Limit("forgot-password"), cfg.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", cfg.AuthHandler.ResetPassword)
		auth.POST("/change-password", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ChangePassword)

		auth.GET("/oauth/:provider", cfg.AuthHandler.InitiateOAuth)
		auth.GET("/oauth/:provider/callback", cfg.AuthHandler.HandleOAuthCallback)

		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetCurrentUser)
		auth.GET("/sessions", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.ListSessions)
		auth.DELETE("/sessions/:id", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.RevokeSession)
	}
}
