package auth

import "github.com/DhavalSuthar-24/leaguehub/internal/user"

type RegisterRequest struct {
	Name     string    `json:"name" binding:"required,min=2,max=100" example:"John Doe"`
	Email    string    `json:"email" binding:"required,email" example:"john@example.com"`
	Password string    `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Role     user.Role `json:"role" binding:"omitempty,oneof=player captain scout" example:"player"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

type AuthResponse struct {
	AccessToken string     `json:"accessToken"`
	TokenType   string     `json:"tokenType"`
	ExpiresIn   int        `json:"expiresIn"` // seconds
	User        *user.User `json:"user"`
}
