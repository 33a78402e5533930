package kit

import (
	"time"

	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
)

type Kit struct {
	ID        string                      `json:"id" gorm:"primaryKey"`
	Name      string                      `json:"name" gorm:"not null"`
	TeamID    *string                     `json:"teamId,omitempty" gorm:"index"`
	Price     float64                     `json:"price"`
	ImageURL  string                      `json:"imageUrl"`
	Sizes     datatypes.JSONSlice[string] `json:"sizes"`
	Available bool                        `json:"available"`
	models.Timestamps
}

// HasSize reports whether size can be ordered. A kit with no size list
// accepts any size.
func (k *Kit) HasSize(size string) bool {
	if len(k.Sizes) == 0 {
		return true
	}
	return models.Contains(k.Sizes, size)
}

type RequestType string

const (
	TypeOfficialKit  RequestType = "official_kit"
	TypeCustomDesign RequestType = "custom_design"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusReady      RequestStatus = "ready"
	StatusDelivered  RequestStatus = "delivered"
	StatusArchived   RequestStatus = "archived"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusDelivered, StatusArchived:
		return true
	}
	return false
}

// KitRequest is a user's kit order. AdminMessage holds only the latest
// note from the admins.
type KitRequest struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	Reference      string        `json:"reference" gorm:"uniqueIndex;not null"`
	UserID         string        `json:"userId" gorm:"index;not null"`
	KitID          *string       `json:"kitId,omitempty"`
	Type           RequestType   `json:"type" gorm:"not null"`
	Size           string        `json:"size"`
	Quantity       int           `json:"quantity"`
	PlayerName     string        `json:"playerName,omitempty"`
	PlayerNumber   int           `json:"playerNumber,omitempty"`
	DesignNotes    string        `json:"designNotes,omitempty"`
	Status         RequestStatus `json:"status" gorm:"index;not null"`
	AdminMessage   string        `json:"adminMessage,omitempty"`
	AdminMessageAt *time.Time    `json:"adminMessageAt,omitempty"`
	models.Timestamps
}
