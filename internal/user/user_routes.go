package user

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

func UserRoutes(router *gin.RouterGroup, repo UserRepository, authMW gin.HandlerFunc) {
	userController := NewUserController(repo)

	adminRoutes := router.Group("/admin/users")
	adminRoutes.Use(authMW, rmiddleware.AdminMiddleware())
	{
		adminRoutes.GET("", userController.GetUsers)
		adminRoutes.GET("/:id", userController.GetUserByID)
		adminRoutes.PUT("/:id/role", userController.UpdateUserRole)
		adminRoutes.DELETE("/:id", userController.DeleteUser)
	}
}
