package scout

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/rmiddleware"
)

type ScoutController struct {
	svc *Service
}

func NewScoutController(svc *Service) *ScoutController {
	return &ScoutController{svc: svc}
}

type recordViewRequest struct {
	EntityType EntityType `json:"entityType" binding:"required,oneof=player team"`
	EntityID   string     `json:"entityId" binding:"required"`
}

// RecordView godoc
// @Summary Record that the scout viewed a player or team
// @Tags Scouting
// @Accept json
// @Produce json
// @Param view body recordViewRequest true "Viewed entity"
// @Success 201 {object} ScoutProfile
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /scouting/views [post]
func (sc *ScoutController) RecordView(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	var req recordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	prof, err := sc.svc.RecordView(c.Request.Context(), actor.UserID, req.EntityType, req.EntityID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prof)
}

// GetRecentlyViewed godoc
// @Summary Recently viewed players and teams
// @Tags Scouting
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /scouting/recent [get]
func (sc *ScoutController) GetRecentlyViewed(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	recent, err := sc.svc.RecentlyViewed(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"recent": recent})
}

// GetProfile godoc
// @Summary Scout view counters
// @Tags Scouting
// @Produce json
// @Success 200 {object} ScoutProfile
// @Security BearerAuth
// @Router /scouting/profile [get]
func (sc *ScoutController) GetProfile(c *gin.Context) {
	actor, ok := rmiddleware.CurrentActor(c)
	if !ok {
		return
	}
	prof, err := sc.svc.Profile(c.Request.Context(), actor.UserID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}
