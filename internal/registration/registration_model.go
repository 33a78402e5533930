package registration

import (
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PlayerRegistrationRequest is a user's application for a player card. An
// admin builds the card by hand; approving the request does not create it.
type PlayerRegistrationRequest struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"userId" gorm:"index;not null"`
	Name        string          `json:"name" gorm:"not null"`
	Position    player.Position `json:"position" gorm:"not null"`
	Nationality string          `json:"nationality"`
	Age         int             `json:"age"`
	PhotoURL    string          `json:"photoUrl"`
	Notes       string          `json:"notes,omitempty"`
	Status      Status          `json:"status" gorm:"index;not null"`
	ReviewNote  string          `json:"reviewNote,omitempty"`
	ReviewedBy  string          `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time      `json:"reviewedAt,omitempty"`
	models.Timestamps
}
