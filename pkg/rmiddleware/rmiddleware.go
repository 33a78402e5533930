package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/internal/middleware"
	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
)

// RoleMiddleware lets the request through when the caller holds one of
// requiredRoles. It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := middleware.GetUserIDFromContext(c); err != nil {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized: "+err.Error())
			return
		}

		role := middleware.GetUserRoleFromContext(c)
		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		responses.ErrorResponse(c, http.StatusForbidden, "You don't have permission to access this resource")
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

// CaptainOrAdminMiddleware is a convenience middleware for captain or admin access
func CaptainOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("captain", "admin")
}

// ScoutOrAdminMiddleware is a convenience middleware for scout or admin access
func ScoutOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("scout", "admin")
}

// IsAdmin reports whether the authenticated caller is an admin.
func IsAdmin(c *gin.Context) bool {
	return middleware.GetUserRoleFromContext(c) == "admin"
}

// CurrentActor reads the authenticated caller. When there is none it writes
// a 401 and reports false.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, IsAdmin: IsAdmin(c)}, true
}
