package team

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	svc *Service
}

// NewTeamController creates a new team controller
func NewTeamController(svc *Service) *TeamController {
	return &TeamController{svc: svc}
}

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team. Captains become the captain of the team they create; admins may name another captain.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team"
// @Success 201 {object} Team
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	t, err := tc.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetAllTeams godoc
// @Summary League standings
// @Description Every team with its derived rank, highest experience first.
// @Tags Teams
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	ranked, err := tc.svc.Standings(c.Request.Context())
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"teams": ranked})
}

// GetTeamByID godoc
// @Summary Get a team
// @Tags Teams
// @Produce json
// @Param id path string true "Team id"
// @Success 200 {object} Team
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	t, err := tc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GetTeamPlayers godoc
// @Summary Team roster
// @Tags Teams
// @Produce json
// @Param id path string true "Team id"
// @Success 200 {object} map[string]interface{}
// @Router /teams/{id}/players [get]
func (tc *TeamController) GetTeamPlayers(c *gin.Context) {
	roster, err := tc.svc.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"players": roster})
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path string true "Team id"
// @Param team body UpdateTeamRequest true "Fields to change"
// @Success 200 {object} Team
// @Security BearerAuth
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	t, err := tc.svc.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags Teams
// @Param id path string true "Team id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	if err := tc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// AssignPlayer godoc
// @Summary Put a player on the roster
// @Tags Teams
// @Param id path string true "Team id"
// @Param player_id path string true "Player id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{id}/players/{player_id} [post]
func (tc *TeamController) AssignPlayer(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	p, err := tc.svc.AssignPlayer(c.Request.Context(), actor, c.Param("id"), c.Param("player_id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"player": p})
}

// RemovePlayer godoc
// @Summary Take a player off the roster
// @Tags Teams
// @Param id path string true "Team id"
// @Param player_id path string true "Player id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{id}/players/{player_id} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	if err := tc.svc.RemovePlayer(c.Request.Context(), actor, c.Param("id"), c.Param("player_id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Player removed from team"})
}

// InviteUserToTeam godoc
// @Summary Invite a player
// @Tags Teams
// @Accept json
// @Param id path string true "Team id"
// @Param body body InvitePlayerRequest true "Invitation"
// @Success 201 {object} TeamInvitation
// @Security BearerAuth
// @Router /teams/{id}/invitations [post]
func (tc *TeamController) InviteUserToTeam(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req InvitePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	inv, err := tc.svc.Invite(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// GetInvitationsForTeam godoc
// @Summary Invitations sent by a team
// @Tags Teams
// @Param id path string true "Team id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{id}/invitations [get]
func (tc *TeamController) GetInvitationsForTeam(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	list, err := tc.svc.InvitationsForTeam(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"invitations": list})
}

// GetMyTeamInvitations godoc
// @Summary Invitations addressed to me
// @Tags Teams
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /users/me/invitations [get]
func (tc *TeamController) GetMyTeamInvitations(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	list, err := tc.svc.InvitationsForUser(c.Request.Context(), actor.UserID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"invitations": list})
}

// RespondToTeamInvitation godoc
// @Summary Accept or reject an invitation
// @Tags Teams
// @Param invitation_id path string true "Invitation id"
// @Param action path string true "accept or reject"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /invitations/{invitation_id}/{action} [put]
func (tc *TeamController) RespondToTeamInvitation(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	ctx, id := c.Request.Context(), c.Param("invitation_id")
	var err error
	switch c.Param("action") {
	case "accept":
		err = tc.svc.AcceptInvitation(ctx, actor.UserID, id)
	case "reject":
		err = tc.svc.RejectInvitation(ctx, actor.UserID, id)
	default:
		responses.ErrorResponse(c, http.StatusBadRequest, "Action must be accept or reject")
		return
	}
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Invitation " + c.Param("action") + "ed"})
}
