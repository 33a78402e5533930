package player

import "github.com/DhavalSuthar-24/leaguehub/internal/models"

type Position string

const (
	PositionGK  Position = "GK"
	PositionDEF Position = "DEF"
	PositionMID Position = "MID"
	PositionATT Position = "ATT"
)

func (p Position) Valid() bool {
	switch p {
	case PositionGK, PositionDEF, PositionMID, PositionATT:
		return true
	}
	return false
}

const (
	CardSilver   = "silver"
	CardGold     = "gold"
	CardPlatinum = "platinum"
)

// CardTier derives the display tier from an overall rating.
func CardTier(rating int) string {
	switch {
	case rating >= 85:
		return CardPlatinum
	case rating >= 75:
		return CardGold
	default:
		return CardSilver
	}
}

type Player struct {
	ID            string   `json:"id" gorm:"primaryKey"`
	UserID        *string  `json:"userId,omitempty" gorm:"index"`
	Name          string   `json:"name" gorm:"not null"`
	Position      Position `json:"position" gorm:"not null"`
	Nationality   string   `json:"nationality"`
	Age           int      `json:"age"`
	PhotoURL      string   `json:"photoUrl"`
	TeamID        *string  `json:"teamId,omitempty" gorm:"index"`
	OverallRating int      `json:"overallRating"`
	CardType      string   `json:"cardType"`

	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`

	Goals                  int `json:"goals"`
	Assists                int `json:"assists"`
	DefensiveContributions int `json:"defensiveContributions"`
	CleanSheets            int `json:"cleanSheets"`
	PenaltySaves           int `json:"penaltySaves"`
	MatchesPlayed          int `json:"matchesPlayed"`
	MVPCount               int `json:"mvpCount"`

	models.Timestamps
}

// Attributes are the six card ratings.
type Attributes struct {
	Pace      int `json:"pace" binding:"gte=0,lte=99"`
	Shooting  int `json:"shooting" binding:"gte=0,lte=99"`
	Passing   int `json:"passing" binding:"gte=0,lte=99"`
	Dribbling int `json:"dribbling" binding:"gte=0,lte=99"`
	Defending int `json:"defending" binding:"gte=0,lte=99"`
	Physical  int `json:"physical" binding:"gte=0,lte=99"`
}

func (p *Player) SetAttributes(a Attributes) {
	p.Pace, p.Shooting, p.Passing = a.Pace, a.Shooting, a.Passing
	p.Dribbling, p.Defending, p.Physical = a.Dribbling, a.Defending, a.Physical
}

// Summary is embedded in responses that reference a player.
type Summary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      Position `json:"position"`
	OverallRating int      `json:"overallRating"`
	CardType      string   `json:"cardType"`
}

func (p *Player) Summary() Summary {
	return Summary{ID: p.ID, Name: p.Name, Position: p.Position, OverallRating: p.OverallRating, CardType: p.CardType}
}
