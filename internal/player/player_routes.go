package player

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// PlayerRoutes sets up the player card routes.
func PlayerRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	playerController := NewPlayerController(svc)

	router.GET("/players", playerController.GetPlayers)
	router.GET("/players/:id", playerController.GetPlayerByID)

	adminRoutes := router.Group("/players")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", playerController.CreatePlayer)
		adminRoutes.PUT("/:id", playerController.UpdatePlayer)
		adminRoutes.DELETE("/:id", playerController.DeletePlayer)
	}
}
