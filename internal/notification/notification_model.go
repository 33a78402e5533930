package notification

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeMatchRequest         Type = "match_request"
	TypeMatchRequestAccepted Type = "match_request_accepted"
	TypeMatchRequestApproved Type = "match_request_approved"
	TypeMatchRequestRejected Type = "match_request_rejected"
	TypeTeamInvitation       Type = "team_invitation"
	TypeInvitationAnswered   Type = "team_invitation_answered"
	TypeCardRejected         Type = "card_rejected"
	TypeRegistrationApproved Type = "registration_approved"
	TypeEventRegistration    Type = "event_registration"
	TypeKitUpdate            Type = "kit_update"
)

// Metadata carries the foreign id an inbox action operates on.
type Metadata struct {
	RequestID    string `json:"requestId,omitempty"`
	InvitationID string `json:"invitationId,omitempty"`
	MatchID      string `json:"matchId,omitempty"`
	EventID      string `json:"eventId,omitempty"`
	KitRequestID string `json:"kitRequestId,omitempty"`
}

// Notification is one entry of a user's append-only inbox. Only Read and
// ReadAt change after creation.
type Notification struct {
	ID          string                       `json:"id" gorm:"primaryKey"`
	RecipientID string                       `json:"recipientId" gorm:"index;not null"`
	Type        Type                         `json:"type" gorm:"not null"`
	Title       string                       `json:"title"`
	Message     string                       `json:"message"`
	Read        bool                         `json:"read" gorm:"column:is_read;not null"`
	ReadAt      *time.Time                   `json:"readAt,omitempty"`
	Metadata    datatypes.JSONType[Metadata] `json:"metadata"`
	CreatedAt   time.Time                    `json:"createdAt" gorm:"autoCreateTime:false;index"`
}

// Meta returns the decoded metadata.
func (n *Notification) Meta() Metadata {
	return n.Metadata.Data()
}

// Actionable reports whether the inbox can accept or reject the notification.
func (n *Notification) Actionable() bool {
	return n.Type == TypeMatchRequest || n.Type == TypeTeamInvitation
}
