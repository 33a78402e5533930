package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/pkg/responses"
	"github.com/DhavalSuthar-24/leaguehub/pkg/token"
)

const (
	AuthUserIDKey   = "auth_user_id"
	AuthUserRoleKey = "auth_user_role"
)

// AuthMiddleware accepts a Bearer access token and loads the caller's
// current role from the users table.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}

		var role string
		err = db.WithContext(c.Request.Context()).
			Table("users").Select("role").Where("id = ?", claims.UserID).
			Scan(&role).Error
		if err != nil {
			responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load user")
			return
		}
		if role == "" {
			responses.ErrorResponse(c, http.StatusUnauthorized, "User not found or inactive")
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUserRoleKey, role)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	uid, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}

// GetUserRoleFromContext returns the role loaded by AuthMiddleware.
func GetUserRoleFromContext(c *gin.Context) string {
	return c.GetString(AuthUserRoleKey)
}
