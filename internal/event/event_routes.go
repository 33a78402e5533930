package event

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// EventRoutes sets up the league event routes. The event's matches are
// served by the match package.
func EventRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	eventController := NewEventController(svc)

	router.GET("/events", eventController.GetEvents)
	router.GET("/events/:id", eventController.GetEvent)
	router.GET("/events/:id/teams", eventController.GetApprovedTeams)

	captainRoutes := router.Group("/events")
	captainRoutes.Use(authMW, rmiddleware.CaptainOrAdminMiddleware())
	{
		captainRoutes.POST("/:id/teams/:team_id", eventController.RegisterTeam)
	}

	adminRoutes := router.Group("/events")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", eventController.CreateEvent)
		adminRoutes.PUT("/:id", eventController.UpdateEvent)
		adminRoutes.DELETE("/:id", eventController.DeleteEvent)
		adminRoutes.PUT("/:id/teams/:team_id", eventController.SetRegistrationStatus)
	}
}
