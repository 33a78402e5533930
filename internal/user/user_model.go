package user

import "github.com/DhavalSuthar-24/leaguehub/internal/models"

type Role string

const (
	RolePlayer  Role = "player"
	RoleCaptain Role = "captain"
	RoleAdmin   Role = "admin"
	RoleScout   Role = "scout"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCaptain, RoleAdmin, RoleScout:
		return true
	}
	return false
}

type User struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"not null"`
	Role         Role    `json:"role" gorm:"index;not null"`
	PlayerCardID *string `json:"playerCardId,omitempty" gorm:"index"`
	models.Timestamps
}

// Summary is the public slice of a user embedded in other responses.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
