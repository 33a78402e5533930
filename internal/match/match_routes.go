package match

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	matchController := NewMatchController(svc)

	router.GET("/matches", matchController.GetMatches)
	router.GET("/matches/:id", matchController.GetMatchByID)
	router.GET("/events/:id/matches", matchController.GetEventMatches)

	// Match lifecycle is run by admins
	adminRoutes := router.Group("/matches")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", matchController.CreateMatch)
		adminRoutes.DELETE("/:id", matchController.DeleteMatch)
		adminRoutes.POST("/:id/start", matchController.StartMatch)
		adminRoutes.POST("/:id/events", matchController.RecordEvent)
		adminRoutes.POST("/:id/end", matchController.EndMatch)
		adminRoutes.POST("/:id/evaluation", matchController.SubmitEvaluation)
		adminRoutes.POST("/:id/cancel", matchController.CancelMatch)
	}

	// Match requests
	requestRoutes := router.Group("/match-requests")
	requestRoutes.Use(authMW, rmiddleware.CaptainOrAdminMiddleware())
	{
		requestRoutes.POST("", matchController.SubmitRequest)
		requestRoutes.GET("", matchController.GetRequests)
		requestRoutes.GET("/:id", matchController.GetRequest)
		requestRoutes.POST("/:id/accept", matchController.AcceptRequest)
		requestRoutes.POST("/:id/decline", matchController.DeclineRequest)
	}

	adminRequestRoutes := router.Group("/match-requests")
	adminRequestRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRequestRoutes.POST("/:id/approve", matchController.ApproveRequest)
		adminRequestRoutes.POST("/:id/reject", matchController.RejectRequest)
	}
}
