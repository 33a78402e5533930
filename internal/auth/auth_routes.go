package auth

import "github.com/gin-gonic/gin"

func RegisterAuthRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	authController := NewAuthController(svc)

	// Public routes
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
	}

	// Authenticated routes
	authProtected := router.Group("/auth")
	authProtected.Use(authMW)
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
	}
}
