package player

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

// PlayerController handles player card HTTP requests
type PlayerController struct {
	svc *Service
}

func NewPlayerController(svc *Service) *PlayerController {
	return &PlayerController{svc: svc}
}

// CreatePlayer godoc
// @Summary Create a player card
// @Description Admin card builder. Links the card to userId when given.
// @Tags Players
// @Accept json
// @Produce json
// @Param player body CreateInput true "Player card"
// @Success 201 {object} Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /players [post]
func (pc *PlayerController) CreatePlayer(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	p, err := pc.svc.Create(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPlayers godoc
// @Summary List players
// @Tags Players
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param position query string false "GK, DEF, MID or ATT"
// @Param team_id query string false "Team id"
// @Param name query string false "Name contains"
// @Success 200 {object} map[string]interface{}
// @Router /players [get]
func (pc *PlayerController) GetPlayers(c *gin.Context) {
	page, pageSize := responses.Page(c)
	filters := make(map[string]string)
	for _, key := range []string{"position", "team_id", "name"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			filters[key] = v
		}
	}

	players, total, err := pc.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, "players", players, page, pageSize, total)
}

// GetPlayerByID godoc
// @Summary Get a player card
// @Tags Players
// @Produce json
// @Param id path string true "Player id"
// @Success 200 {object} Player
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (pc *PlayerController) GetPlayerByID(c *gin.Context) {
	p, err := pc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePlayer godoc
// @Summary Update a player card
// @Tags Players
// @Accept json
// @Produce json
// @Param id path string true "Player id"
// @Param player body UpdateInput true "Fields to change"
// @Success 200 {object} Player
// @Security BearerAuth
// @Router /players/{id} [put]
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	p, err := pc.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePlayer godoc
// @Summary Delete a player card
// @Tags Players
// @Param id path string true "Player id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /players/{id} [delete]
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	if err := pc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Player deleted successfully"})
}
