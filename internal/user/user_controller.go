package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=player captain admin scout"`
}

// UserController serves the admin user console.
type UserController struct {
	repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

// GetUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.repo.List(c.Request.Context())
	if err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"users": users})
}

// GetUserByID godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (uc *UserController) GetUserByID(c *gin.Context) {
	u, err := uc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} User
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (uc *UserController) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if !req.Role.Valid() {
		responses.FromError(c, apperror.Validationf("unknown role %q", req.Role))
		return
	}
	u, err := uc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.FromError(c, err)
		return
	}
	u.Role = req.Role
	if err := uc.repo.Save(c.Request.Context(), u); err != nil {
		responses.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User id"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.FromError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
