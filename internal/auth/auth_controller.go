package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

type AuthController struct {
	svc *Service
}

func NewAuthController(svc *Service) *AuthController {
	return &AuthController{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a player, captain or scout account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	u, err := ac.svc.Register(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{"user": u})
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	res, err := ac.svc.Login(c.Request.Context(), req)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetProfile godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} user.User
// @Security BearerAuth
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := ac.svc.Me(c.Request.Context(), userID)
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Auth
// @Accept json
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := ac.svc.ChangePassword(c.Request.Context(), userID, req); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}
