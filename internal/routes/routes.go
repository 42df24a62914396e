package routes

import (
	"yuanfen_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.FeedHandler.RegisterRoutes(api)
		appHandlers.MatchHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
	}
}
