package match

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// MatchController handles match and match request HTTP requests
type MatchController struct {
	svc *Service
}

// NewMatchController creates a new match controller
func NewMatchController(svc *Service) *MatchController {
	return &MatchController{svc: svc}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type opponentAcceptRequest struct {
	Lineup []string `json:"lineup"`
}

// CreateMatch godoc
// @Summary Create a match
// @Description Starts the match immediately unless scheduledTime is given.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateInput true "Match"
// @Success 201 {object} Match
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.svc.Create(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GetMatches godoc
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Match status"
// @Param team_id query string false "Either side"
// @Param event_id query string false "League event"
// @Success 200 {object} map[string]interface{}
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, pageSize := responses.Page(c)
	filters := make(map[string]string)
	for _, key := range []string{"status", "team_id", "event_id"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			filters[key] = v
		}
	}
	matches, total, err := mc.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, "matches", matches, page, pageSize, total)
}

// GetMatchByID godoc
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param id path string true "Match id"
// @Success 200 {object} Match
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	m, err := mc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetEventMatches godoc
// @Summary Matches of a league event
// @Tags Events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} map[string]interface{}
// @Router /events/{id}/matches [get]
func (mc *MatchController) GetEventMatches(c *gin.Context) {
	matches, err := mc.svc.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"matches": matches})
}

// StartMatch godoc
// @Summary Start a scheduled match
// @Tags Matches
// @Param id path string true "Match id"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	m, err := mc.svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// RecordEvent godoc
// @Summary Record a goal, assist or other in-match action
// @Tags Matches
// @Accept json
// @Param id path string true "Match id"
// @Param event body RecordEventInput true "Action"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id}/events [post]
func (mc *MatchController) RecordEvent(c *gin.Context) {
	var req RecordEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.svc.RecordEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// EndMatch godoc
// @Summary End a running match
// @Description Records the final score and the man of the match.
// @Tags Matches
// @Accept json
// @Param id path string true "Match id"
// @Param result body EndInput true "Final score and MVP"
// @Success 200 {object} Match
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{id}/end [post]
func (mc *MatchController) EndMatch(c *gin.Context) {
	var req EndInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.svc.End(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// SubmitEvaluation godoc
// @Summary Finalize a match after the player evaluation
// @Tags Matches
// @Param id path string true "Match id"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id}/evaluation [post]
func (mc *MatchController) SubmitEvaluation(c *gin.Context) {
	m, err := mc.svc.SubmitEvaluation(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// CancelMatch godoc
// @Summary Cancel a match
// @Tags Matches
// @Param id path string true "Match id"
// @Success 200 {object} Match
// @Security BearerAuth
// @Router /matches/{id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	m, err := mc.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMatch godoc
// @Summary Delete a match
// @Tags Matches
// @Param id path string true "Match id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	if err := mc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match deleted successfully"})
}

// SubmitRequest godoc
// @Summary Request a match against another team
// @Tags Match Requests
// @Accept json
// @Param request body SubmitInput true "Request"
// @Success 201 {object} MatchRequest
// @Security BearerAuth
// @Router /match-requests [post]
func (mc *MatchController) SubmitRequest(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := mc.svc.Submit(c.Request.Context(), actor.UserID, req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GetRequests godoc
// @Summary List match requests
// @Description Admins see every request, captains those involving their teams.
// @Tags Match Requests
// @Param status query string false "Filter by status (admin only)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /match-requests [get]
func (mc *MatchController) GetRequests(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var (
		list []MatchRequest
		err  error
	)
	if actor.IsAdmin {
		list, err = mc.svc.Requests(c.Request.Context(), RequestStatus(c.Query("status")))
	} else {
		list, err = mc.svc.RequestsForCaptain(c.Request.Context(), actor.UserID)
	}
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"requests": list})
}

// GetRequest godoc
// @Summary Get a match request
// @Tags Match Requests
// @Param id path string true "Request id"
// @Success 200 {object} MatchRequest
// @Security BearerAuth
// @Router /match-requests/{id} [get]
func (mc *MatchController) GetRequest(c *gin.Context) {
	r, err := mc.svc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// AcceptRequest godoc
// @Summary Opponent captain accepts a match request
// @Tags Match Requests
// @Accept json
// @Param id path string true "Request id"
// @Param body body opponentAcceptRequest false "Opponent lineup"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /match-requests/{id}/accept [post]
func (mc *MatchController) AcceptRequest(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req opponentAcceptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	if err := mc.svc.OpponentAccept(c.Request.Context(), actor.UserID, c.Param("id"), req.Lineup); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match request accepted"})
}

// DeclineRequest godoc
// @Summary Opponent captain declines a match request
// @Tags Match Requests
// @Accept json
// @Param id path string true "Request id"
// @Param body body reasonRequest false "Reason"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /match-requests/{id}/decline [post]
func (mc *MatchController) DeclineRequest(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req reasonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	if err := mc.svc.OpponentDecline(c.Request.Context(), actor.UserID, c.Param("id"), req.Reason); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match request declined"})
}

// ApproveRequest godoc
// @Summary Approve a match request and create the match
// @Tags Match Requests
// @Param id path string true "Request id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /match-requests/{id}/approve [post]
func (mc *MatchController) ApproveRequest(c *gin.Context) {
	r, m, err := mc.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"request": r, "match": m})
}

// RejectRequest godoc
// @Summary Reject a match request
// @Tags Match Requests
// @Accept json
// @Param id path string true "Request id"
// @Param body body reasonRequest true "Reason"
// @Success 200 {object} MatchRequest
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /match-requests/{id}/reject [post]
func (mc *MatchController) RejectRequest(c *gin.Context) {
	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	r, err := mc.svc.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
