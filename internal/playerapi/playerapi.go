// Package playerapi serves the three standalone endpoints used by the
// player card builder: health, create-player and player lookup.
package playerapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

const pingTimeout = 3 * time.Second

type Handler struct {
	st      *store.Store
	players *player.Service
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{st: st, players: player.NewService(st)}
}

type createPlayerRequest struct {
	UserID        string            `json:"userId" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Position      player.Position   `json:"position" binding:"required"`
	Nationality   string            `json:"nationality"`
	Age           int               `json:"age" binding:"gte=0"`
	PhotoURL      string            `json:"photoUrl"`
	OverallRating int               `json:"overallRating" binding:"gte=0,lte=99"`
	Attributes    player.Attributes `json:"attributes"`
}

// Health godoc
// @Summary Database health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := h.st.Ping(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":  false,
			"status":   "error",
			"database": "disconnected",
			"error":    "Database connection failed",
		})
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"status": "ok", "database": "connected"})
}

// CreatePlayer godoc
// @Summary Create a player card for a user
// @Tags Players
// @Accept json
// @Produce json
// @Param player body createPlayerRequest true "Player"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /create-player [post]
func (h *Handler) CreatePlayer(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		responses.FromError(c, apperror.Validation("userId is required"))
		return
	}
	p, err := h.players.Create(c.Request.Context(), player.CreateInput{
		UserID:        req.UserID,
		Name:          req.Name,
		Position:      req.Position,
		Nationality:   req.Nationality,
		Age:           req.Age,
		PhotoURL:      req.PhotoURL,
		OverallRating: req.OverallRating,
		Attributes:    req.Attributes,
	})
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{"player": p})
}

// GetPlayer godoc
// @Summary Fetch a player with its user and team
// @Tags Players
// @Produce json
// @Param id query string true "Player id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /player [get]
func (h *Handler) GetPlayer(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		responses.FromError(c, apperror.Validation("Player ID is required"))
		return
	}
	ctx := c.Request.Context()
	p, err := h.players.Get(ctx, id)
	if err != nil {
		responses.FromError(c, err)
		return
	}

	body := gin.H{"player": p}
	if p.UserID != nil {
		u, err := user.NewUserRepository(h.st).Get(ctx, *p.UserID)
		switch {
		case err == nil:
			body["user"] = u.Summary()
		case !apperror.Is(err, apperror.KindNotFound):
			responses.FromError(c, err)
			return
		}
	}
	if p.TeamID != nil {
		t, err := team.NewTeamRepository(h.st).GetTeamByID(ctx, *p.TeamID)
		switch {
		case err == nil:
			body["team"] = t.Summary()
		case !apperror.Is(err, apperror.KindNotFound):
			responses.FromError(c, err)
			return
		}
	}
	responses.SuccessResponse(c, http.StatusOK, body)
}

// Routes mounts the endpoints. Other methods on these paths get a 405.
func Routes(router *gin.RouterGroup, h *Handler) {
	router.GET("/health", h.Health)
	router.POST("/create-player", h.CreatePlayer)
	router.GET("/player", h.GetPlayer)
}
