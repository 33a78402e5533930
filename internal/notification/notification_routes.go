package notification

import "github.com/gin-gonic/gin"

func NotificationRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	notificationController := NewNotificationController(svc)

	authRoutes := router.Group("/notifications")
	authRoutes.Use(authMW)
	{
		authRoutes.GET("", notificationController.GetMyNotifications)
		authRoutes.GET("/unread-count", notificationController.GetUnreadCount)
		authRoutes.PUT("/read-all", notificationController.MarkAllRead)
		authRoutes.PUT("/:id/read", notificationController.MarkRead)
		authRoutes.POST("/:id/respond", notificationController.Respond)
	}
}
