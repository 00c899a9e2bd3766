package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/wombat/service"
)

// SetupRouter sets up the Gin router. metrics may be nil.
func SetupRouter(host *service.HostService, metrics http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handlers := NewAuthHandlers(host)

	authenticator := router.Group("/authenticator")
	{
		authenticator.GET("", handlers.Describe)
		authenticator.GET("/status", handlers.Status)
		authenticator.POST("/init", handlers.Init)
		authenticator.POST("/reset", handlers.Reset)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(host))
	{
		api.GET("/me", handlers.Me)
	}

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	return router
}
