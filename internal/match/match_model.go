package match

import (
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
)

type Status string

const (
	StatusScheduled            Status = "scheduled"
	StatusRunning              Status = "running"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusFinished             Status = "finished"
	StatusCancelled            Status = "cancelled"
)

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

type EventType string

const (
	EventGoal                  EventType = "goal"
	EventAssist                EventType = "assist"
	EventDefensiveContribution EventType = "defensive_contribution"
	EventCleanSheet            EventType = "clean_sheet"
	EventPenaltySave           EventType = "penalty_save"
)

func (t EventType) Valid() bool {
	switch t {
	case EventGoal, EventAssist, EventDefensiveContribution, EventCleanSheet, EventPenaltySave:
		return true
	}
	return false
}

// MatchEvent is one recorded in-match action.
type MatchEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	PlayerID   string    `json:"playerId"`
	TeamID     string    `json:"teamId"`
	Minute     int       `json:"minute,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Match struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	HomeTeamID    string        `json:"homeTeamId" gorm:"index;not null"`
	AwayTeamID    string        `json:"awayTeamId" gorm:"index;not null"`
	HomePlayerIDs models.IDList `json:"homePlayerIds"`
	AwayPlayerIDs models.IDList `json:"awayPlayerIds"`
	HomeScore     int           `json:"homeScore"`
	AwayScore     int           `json:"awayScore"`
	Status        Status        `json:"status" gorm:"index;not null"`
	ManOfTheMatch *string       `json:"manOfTheMatch,omitempty"`
	EventID       *string       `json:"eventId,omitempty" gorm:"index"`
	ScheduledTime *time.Time    `json:"scheduledTime,omitempty"`
	Location      string        `json:"location,omitempty"`
	StartedAt     *time.Time    `json:"startedAt,omitempty"`
	FinishedAt    *time.Time    `json:"finishedAt,omitempty"`

	Events datatypes.JSONSlice[MatchEvent] `json:"events"`

	models.Timestamps
}

// SideOf returns the team a lineup player plays for, or "".
func (m *Match) SideOf(playerID string) string {
	switch {
	case models.Contains(m.HomePlayerIDs, playerID):
		return m.HomeTeamID
	case models.Contains(m.AwayPlayerIDs, playerID):
		return m.AwayTeamID
	}
	return ""
}

// Participants lists every lineup player once, home side first.
func (m *Match) Participants() []string {
	out := make([]string, 0, len(m.HomePlayerIDs)+len(m.AwayPlayerIDs))
	seen := make(map[string]bool)
	for _, ids := range [][]string{m.HomePlayerIDs, m.AwayPlayerIDs} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

type RequestStatus string

const (
	RequestPendingOpponent RequestStatus = "pending_opponent"
	RequestPendingAdmin    RequestStatus = "pending_admin"
	RequestApproved        RequestStatus = "approved"
	RequestRejected        RequestStatus = "rejected"
)

// Lineup size a captain must submit with a match request.
const (
	MinLineup = 5
	MaxLineup = 7
)

// MatchRequest is a captain's proposal to play another team.
type MatchRequest struct {
	ID              string        `json:"id" gorm:"primaryKey"`
	RequesterTeamID string        `json:"requesterTeamId" gorm:"index;not null"`
	OpponentTeamID  string        `json:"opponentTeamId" gorm:"index;not null"`
	RequestedBy     string        `json:"requestedBy" gorm:"not null"`
	Lineup          models.IDList `json:"lineup"`
	OpponentLineup  models.IDList `json:"opponentLineup,omitempty"`
	ScheduledTime   *time.Time    `json:"scheduledTime,omitempty"`
	Location        string        `json:"location,omitempty"`
	Message         string        `json:"message,omitempty"`
	Status          RequestStatus `json:"status" gorm:"index;not null"`
	Reason          string        `json:"reason,omitempty"`
	MatchID         *string       `json:"matchId,omitempty"`
	models.Timestamps
}

// Pending reports whether the request still awaits a decision.
func (r *MatchRequest) Pending() bool {
	return r.Status == RequestPendingOpponent || r.Status == RequestPendingAdmin
}
