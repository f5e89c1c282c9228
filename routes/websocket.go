package routes

import (
	"github.com/gin-gonic/gin"

	"mindspace-notes/mindspace/middleware"
	"mindspace-notes/mindspace/services"
)

// RegisterWebSocketRoutes sets up the live-query push endpoint.
func RegisterWebSocketRoutes(router *gin.Engine, authService services.AuthServiceInterface, wsService services.WebSocketServiceInterface) {
	wsGroup := router.Group("/api/v1/ws")
	wsGroup.Use(middleware.AuthMiddleware(authService))
	{
		wsGroup.GET("", func(c *gin.Context) {
			wsService.HandleConnection(c)
		})
	}
}
