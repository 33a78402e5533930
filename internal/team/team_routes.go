package team

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// TeamRoutes sets up all team-related routes
func TeamRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	teamController := NewTeamController(svc)

	// Public team routes
	router.GET("/teams", teamController.GetAllTeams)
	router.GET("/teams/:id", teamController.GetTeamByID)
	router.GET("/teams/:id/players", teamController.GetTeamPlayers)

	// Authenticated user routes
	authRoutes := router.Group("/")
	authRoutes.Use(authMW)
	{
		authRoutes.GET("/users/me/invitations", teamController.GetMyTeamInvitations)
		authRoutes.PUT("/invitations/:invitation_id/:action", teamController.RespondToTeamInvitation)
	}

	// Captain-managed routes, ownership is checked by the service
	captainRoutes := router.Group("/teams")
	captainRoutes.Use(authMW, rmiddleware.CaptainOrAdminMiddleware())
	{
		captainRoutes.POST("", teamController.CreateTeam)
		captainRoutes.PUT("/:id", teamController.UpdateTeam)
		captainRoutes.POST("/:id/players/:player_id", teamController.AssignPlayer)
		captainRoutes.DELETE("/:id/players/:player_id", teamController.RemovePlayer)
		captainRoutes.POST("/:id/invitations", teamController.InviteUserToTeam)
		captainRoutes.GET("/:id/invitations", teamController.GetInvitationsForTeam)
	}

	adminRoutes := router.Group("/teams")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.DELETE("/:id", teamController.DeleteTeam)
	}
}
