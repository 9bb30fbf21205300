package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/reque-io/reque/internal/interfaces/http/middleware"
	"github.com/reque-io/reque/internal/interfaces/http/routes"

	_ "github.com/reque-io/reque/docs"
)

// Router assembles the gin engine from the container's handlers and
// middleware.
type Router struct {
	engine *gin.Engine
	c      *Container
}

func NewRouter(c *Container) *Router {
	return &Router{
		engine: gin.New(),
		c:      c,
	}
}

// SetupRoutes installs the global middleware chain and all route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.c.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.CORS(r.c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CSRF())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.c.authHandler,
		AuthMiddleware: r.c.authMiddleware,
		RateLimiter:    r.c.rateLimiter,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:          r.c.userHandler,
		AuthMiddleware:       r.c.authMiddleware,
		PermissionMiddleware: r.c.permissionMiddleware,
	})

	routes.SetupRequestRoutes(r.engine, &routes.RequestRouteConfig{
		RequestHandler:       r.c.requestHandler,
		CommentHandler:       r.c.commentHandler,
		AttachmentHandler:    r.c.attachmentHandler,
		AuthMiddleware:       r.c.authMiddleware,
		PermissionMiddleware: r.c.permissionMiddleware,
	})
}

// Engine returns the configured gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
