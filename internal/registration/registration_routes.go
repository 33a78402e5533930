package registration

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

func RegistrationRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	registrationController := NewRegistrationController(svc)

	authRoutes := router.Group("/registrations")
	authRoutes.Use(authMW)
	{
		authRoutes.POST("", registrationController.SubmitRegistration)
		authRoutes.GET("/mine", registrationController.GetMyRegistrations)
	}

	adminRoutes := router.Group("/registrations")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.GET("", registrationController.GetRegistrations)
		adminRoutes.PUT("/:id/status", registrationController.UpdateRegistrationStatus)
	}
}
