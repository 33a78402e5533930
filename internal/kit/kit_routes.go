package kit

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

func KitRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	kitController := NewKitController(svc)

	router.GET("/kits", kitController.GetKits)
	router.GET("/kits/:id", kitController.GetKit)

	adminKits := router.Group("/kits")
	adminKits.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminKits.POST("", kitController.CreateKit)
		adminKits.PUT("/:id", kitController.UpdateKit)
		adminKits.DELETE("/:id", kitController.DeleteKit)
	}

	requestRoutes := router.Group("/kit-requests")
	requestRoutes.Use(authMW)
	{
		requestRoutes.POST("", kitController.SubmitKitRequest)
		requestRoutes.GET("", kitController.GetKitRequests)
	}

	adminRequests := router.Group("/kit-requests")
	adminRequests.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRequests.PUT("/:id/status", kitController.SetKitRequestStatus)
		adminRequests.PUT("/:id/message", kitController.SetKitRequestMessage)
	}
}
