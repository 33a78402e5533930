package notification

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// MatchRequestResponder answers a match_request notification on behalf of
// the opponent captain.
type MatchRequestResponder interface {
	OpponentAccept(ctx context.Context, userID, requestID string, lineup []string) error
	OpponentDecline(ctx context.Context, userID, requestID, reason string) error
	// AwaitingOpponent reports whether the request still waits on the
	// opponent captain.
	AwaitingOpponent(ctx context.Context, requestID string) (bool, error)
}

// InvitationResponder answers a team_invitation notification on behalf of
// the invited player.
type InvitationResponder interface {
	AcceptInvitation(ctx context.Context, userID, invitationID string) error
	RejectInvitation(ctx context.Context, userID, invitationID string) error
	InvitationOpen(ctx context.Context, invitationID string) (bool, error)
}

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

type RespondInput struct {
	Action Action   `json:"action" binding:"required,oneof=accept reject"`
	Reason string   `json:"reason"`
	Lineup []string `json:"lineup"`
}

type Service struct {
	st            *store.Store
	matchRequests MatchRequestResponder
	invitations   InvitationResponder
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

// HandleMatchRequests and HandleInvitations wire the inbox actions. They are
// set once at startup.
func (s *Service) HandleMatchRequests(r MatchRequestResponder) { s.matchRequests = r }

func (s *Service) HandleInvitations(r InvitationResponder) { s.invitations = r }

func (s *Service) repo() NotificationRepository {
	return NewNotificationRepository(s.st)
}

// Notify appends a notification to the recipient's inbox.
func (s *Service) Notify(ctx context.Context, recipientID string, typ Type, title, message string, meta Metadata) (*Notification, error) {
	if recipientID == "" {
		return nil, apperror.Validation("notification recipient is required")
	}
	n := &Notification{
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Metadata:    datatypes.NewJSONType(meta),
	}
	if err := s.repo().Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	return s.repo().ListForUser(ctx, userID, unreadOnly)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo().UnreadCount(ctx, userID)
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Notification, error) {
	n, err := s.repo().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, apperror.Forbidden("notification belongs to another user")
	}
	return n, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo().MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo().MarkAllRead(ctx, userID)
}

// Respond runs the inline accept or reject action of a match_request or
// team_invitation notification and then marks it read. The two writes are
// independent: when marking fails the action stays applied. A notification
// whose request or invitation was already settled elsewhere is marked read
// and reported as a validation error.
func (s *Service) Respond(ctx context.Context, userID, id string, in RespondInput) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if in.Action != ActionAccept && in.Action != ActionReject {
		return apperror.Validationf("unknown action %q", in.Action)
	}
	meta := n.Meta()

	var open bool
	switch n.Type {
	case TypeMatchRequest:
		if s.matchRequests == nil || meta.RequestID == "" {
			return apperror.Validation("notification has no match request attached")
		}
		open, err = s.matchRequests.AwaitingOpponent(ctx, meta.RequestID)
		if err != nil {
			return err
		}
		if !open {
			return s.settled(ctx, n, "match request was already answered")
		}
		if in.Action == ActionAccept {
			err = s.matchRequests.OpponentAccept(ctx, userID, meta.RequestID, in.Lineup)
		} else {
			err = s.matchRequests.OpponentDecline(ctx, userID, meta.RequestID, in.Reason)
		}
	case TypeTeamInvitation:
		if s.invitations == nil || meta.InvitationID == "" {
			return apperror.Validation("notification has no invitation attached")
		}
		open, err = s.invitations.InvitationOpen(ctx, meta.InvitationID)
		if err != nil {
			return err
		}
		if !open {
			return s.settled(ctx, n, "invitation was already answered")
		}
		if in.Action == ActionAccept {
			err = s.invitations.AcceptInvitation(ctx, userID, meta.InvitationID)
		} else {
			err = s.invitations.RejectInvitation(ctx, userID, meta.InvitationID)
		}
	default:
		return apperror.Validationf("notifications of type %s have no actions", n.Type)
	}
	if err != nil {
		return err
	}

	if err := s.repo().MarkRead(ctx, n.ID); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("notification_id", n.ID).
			Str("action", string(in.Action)).
			Msg("Action applied but notification could not be marked read")
		return err
	}
	return nil
}

func (s *Service) settled(ctx context.Context, n *Notification, msg string) error {
	if err := s.repo().MarkRead(ctx, n.ID); err != nil {
		return err
	}
	return apperror.Validation(msg)
}
