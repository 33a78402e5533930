package scout

import (
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
)

type EntityType string

const (
	EntityPlayer EntityType = "player"
	EntityTeam   EntityType = "team"
)

func (t EntityType) Valid() bool {
	return t == EntityPlayer || t == EntityTeam
}

// ScoutProfile aggregates a scout's views. ID is the scout's user id.
type ScoutProfile struct {
	ID           string     `json:"scoutId" gorm:"primaryKey"`
	TotalViews   int        `json:"totalViews"`
	PlayerViews  int        `json:"playerViews"`
	TeamViews    int        `json:"teamViews"`
	LastViewedAt *time.Time `json:"lastViewedAt,omitempty"`
	models.Timestamps
}

// ScoutActivity is one entry of the append-only view log.
type ScoutActivity struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	ScoutID    string     `json:"scoutId" gorm:"index;not null"`
	EntityID   string     `json:"entityId" gorm:"not null"`
	EntityType EntityType `json:"entityType" gorm:"not null"`
	ViewedAt   time.Time  `json:"viewedAt" gorm:"index"`
}

// ViewedEntity is one row of the recently viewed list.
type ViewedEntity struct {
	EntityID   string     `json:"entityId"`
	EntityType EntityType `json:"entityType"`
	Name       string     `json:"name,omitempty"`
	ViewedAt   time.Time  `json:"viewedAt"`
}
