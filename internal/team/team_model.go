package team

import (
	"sort"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
)

// Experience awarded per finished match.
const (
	XPWin  = 30
	XPDraw = 15
	XPLoss = 5
)

type Team struct {
	ID               string `json:"id" gorm:"primaryKey"`
	Name             string `json:"name" gorm:"uniqueIndex;not null"`
	LogoURL          string `json:"logoUrl"`
	CaptainID        string `json:"captainId" gorm:"index"`
	Wins             int    `json:"wins"`
	Draws            int    `json:"draws"`
	Losses           int    `json:"losses"`
	TotalMatches     int    `json:"totalMatches"`
	ExperiencePoints int    `json:"experiencePoints"`
	models.Timestamps
}

// Summary is embedded in responses that reference a team.
type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LogoURL          string `json:"logoUrl,omitempty"`
	ExperiencePoints int    `json:"experiencePoints"`
}

func (t *Team) Summary() Summary {
	return Summary{ID: t.ID, Name: t.Name, LogoURL: t.LogoURL, ExperiencePoints: t.ExperiencePoints}
}

// RecordResult adds one finished match to the team's record.
func (t *Team) RecordResult(goalsFor, goalsAgainst int) {
	t.TotalMatches++
	switch {
	case goalsFor > goalsAgainst:
		t.Wins++
		t.ExperiencePoints += XPWin
	case goalsFor == goalsAgainst:
		t.Draws++
		t.ExperiencePoints += XPDraw
	default:
		t.Losses++
		t.ExperiencePoints += XPLoss
	}
}

// RankedTeam is a team with its derived standing. Rank is never stored.
type RankedTeam struct {
	Rank int `json:"rank"`
	Team
}

// Rank orders teams by experience points, highest first. Teams with equal
// points keep their input order.
func Rank(teams []Team) []RankedTeam {
	ranked := make([]RankedTeam, len(teams))
	for i := range teams {
		ranked[i] = RankedTeam{Team: teams[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ExperiencePoints > ranked[j].ExperiencePoints
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

type TeamInvitation struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	TeamID    string           `json:"teamId" gorm:"index;not null"`
	PlayerID  string           `json:"playerId" gorm:"index;not null"`
	InvitedBy string           `json:"invitedBy"`
	Message   string           `json:"message,omitempty"`
	Status    InvitationStatus `json:"status" gorm:"not null"`
	models.Timestamps
}
