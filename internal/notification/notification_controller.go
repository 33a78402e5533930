package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

type NotificationController struct {
	svc *Service
}

func NewNotificationController(svc *Service) *NotificationController {
	return &NotificationController{svc: svc}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// GetMyNotifications godoc
// @Summary List my notifications
// @Description Newest first. Pass unread=true to hide read entries.
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := nc.svc.ListForUser(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"notifications": list})
}

// GetUnreadCount godoc
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := nc.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"unread": n})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Param id path string true "Notification id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := nc.svc.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags Notifications
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := nc.svc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"updated": n})
}

// Respond godoc
// @Summary Accept or reject from the inbox
// @Description Applies the action of a match_request or team_invitation notification, then marks it read.
// @Tags Notifications
// @Accept json
// @Param id path string true "Notification id"
// @Param body body RespondInput true "Action"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications/{id}/respond [post]
func (nc *NotificationController) Respond(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req RespondInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := nc.svc.Respond(c.Request.Context(), userID, c.Param("id"), req); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Response recorded"})
}
