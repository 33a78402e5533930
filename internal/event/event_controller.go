package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

type EventController struct {
	svc *Service
}

func NewEventController(svc *Service) *EventController {
	return &EventController{svc: svc}
}

type registrationStatusRequest struct {
	Status RegistrationStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Param event body CreateInput true "Event"
// @Success 201 {object} Event
// @Security BearerAuth
// @Router /events [post]
func (ec *EventController) CreateEvent(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	e, err := ec.svc.Create(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GetEvents godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param status query string false "upcoming, ongoing, completed or cancelled"
// @Success 200 {object} map[string]interface{}
// @Router /events [get]
func (ec *EventController) GetEvents(c *gin.Context) {
	events, err := ec.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"events": events})
}

// GetEvent godoc
// @Summary Get an event
// @Tags Events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} Event
// @Router /events/{id} [get]
func (ec *EventController) GetEvent(c *gin.Context) {
	e, err := ec.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param event body UpdateInput true "Fields to change"
// @Success 200 {object} Event
// @Security BearerAuth
// @Router /events/{id} [put]
func (ec *EventController) UpdateEvent(c *gin.Context) {
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	e, err := ec.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Events
// @Param id path string true "Event id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{id} [delete]
func (ec *EventController) DeleteEvent(c *gin.Context) {
	if err := ec.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// RegisterTeam godoc
// @Summary Register a team for an event
// @Tags Events
// @Param id path string true "Event id"
// @Param team_id path string true "Team id"
// @Success 201 {object} Event
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /events/{id}/teams/{team_id} [post]
func (ec *EventController) RegisterTeam(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	e, err := ec.svc.RegisterTeam(c.Request.Context(), actor, c.Param("id"), c.Param("team_id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// SetRegistrationStatus godoc
// @Summary Approve, reject or reset a team registration
// @Tags Events
// @Accept json
// @Param id path string true "Event id"
// @Param team_id path string true "Team id"
// @Param body body registrationStatusRequest true "New status"
// @Success 200 {object} Event
// @Security BearerAuth
// @Router /events/{id}/teams/{team_id} [put]
func (ec *EventController) SetRegistrationStatus(c *gin.Context) {
	var req registrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	e, err := ec.svc.SetRegistrationStatus(c.Request.Context(), c.Param("id"), c.Param("team_id"), req.Status)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GetApprovedTeams godoc
// @Summary Teams approved for an event
// @Tags Events
// @Param id path string true "Event id"
// @Success 200 {object} map[string]interface{}
// @Router /events/{id}/teams [get]
func (ec *EventController) GetApprovedTeams(c *gin.Context) {
	teams, err := ec.svc.ApprovedTeams(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"teams": teams})
}
