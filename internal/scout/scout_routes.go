package scout

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

func ScoutRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	scoutController := NewScoutController(svc)

	scoutRoutes := router.Group("/scouting")
	scoutRoutes.Use(authMW, rmiddleware.ScoutOrAdminMiddleware())
	{
		scoutRoutes.POST("/views", scoutController.RecordView)
		scoutRoutes.GET("/recent", scoutController.GetRecentlyViewed)
		scoutRoutes.GET("/profile", scoutController.GetProfile)
	}
}
