package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

type RegistrationController struct {
	svc *Service
}

func NewRegistrationController(svc *Service) *RegistrationController {
	return &RegistrationController{svc: svc}
}

type statusRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending approved rejected"`
	Note   string `json:"note"`
}

// SubmitRegistration godoc
// @Summary Apply for a player card
// @Tags Registrations
// @Accept json
// @Produce json
// @Param request body SubmitInput true "Application"
// @Success 201 {object} PlayerRegistrationRequest
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /registrations [post]
func (rc *RegistrationController) SubmitRegistration(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := rc.svc.Submit(c.Request.Context(), actor.UserID, req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GetMyRegistrations godoc
// @Summary My card applications
// @Tags Registrations
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /registrations/mine [get]
func (rc *RegistrationController) GetMyRegistrations(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	list, err := rc.svc.Mine(c.Request.Context(), actor.UserID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"registrations": list})
}

// GetRegistrations godoc
// @Summary List card applications
// @Tags Registrations
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /registrations [get]
func (rc *RegistrationController) GetRegistrations(c *gin.Context) {
	list, err := rc.svc.ListByStatus(c.Request.Context(), Status(c.Query("status")))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"registrations": list})
}

// UpdateRegistrationStatus godoc
// @Summary Review a card application
// @Tags Registrations
// @Accept json
// @Param id path string true "Request id"
// @Param body body statusRequest true "Decision"
// @Success 200 {object} PlayerRegistrationRequest
// @Security BearerAuth
// @Router /registrations/{id}/status [put]
func (rc *RegistrationController) UpdateRegistrationStatus(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := rc.svc.UpdateStatus(c.Request.Context(), actor.UserID, c.Param("id"), req.Status, req.Note)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
