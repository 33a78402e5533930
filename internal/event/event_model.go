package event

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	// legacyEnded is accepted on input and stored as StatusCompleted.
	legacyEnded = "ended"
)

// ParseStatus maps an incoming status onto the closed set.
func ParseStatus(s string) (Status, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case string(StatusUpcoming), string(StatusOngoing), string(StatusCompleted), string(StatusCancelled):
		return Status(v), nil
	case legacyEnded:
		return StatusCompleted, nil
	}
	return "", apperror.Validationf("unknown event status %q", s)
}

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// TeamRegistration is one team's entry in an event.
type TeamRegistration struct {
	TeamID       string             `json:"teamId"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type Event struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          Status     `json:"status" gorm:"index;not null"`
	MaxParticipants int        `json:"maxParticipants"`

	Registrations datatypes.JSONSlice[TeamRegistration] `json:"registrations"`

	models.Timestamps
}

// Registration returns the entry for teamID, or nil.
func (e *Event) Registration(teamID string) *TeamRegistration {
	for i := range e.Registrations {
		if e.Registrations[i].TeamID == teamID {
			return &e.Registrations[i]
		}
	}
	return nil
}

// ApprovedTeamIDs lists the teams whose registration is approved.
func (e *Event) ApprovedTeamIDs() []string {
	ids := []string{}
	for _, r := range e.Registrations {
		if r.Status == RegistrationApproved {
			ids = append(ids, r.TeamID)
		}
	}
	return ids
}
