package registration

import (
	"context"
	"strings"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type SubmitInput struct {
	Name        string          `json:"name" binding:"required"`
	Position    player.Position `json:"position" binding:"required"`
	Nationality string          `json:"nationality"`
	Age         int             `json:"age" binding:"gte=0"`
	PhotoURL    string          `json:"photoUrl"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() RegistrationRepository {
	return NewRegistrationRepository(s.st)
}

// Submit files a card application. A user may have one pending request.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*PlayerRegistrationRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperror.Validation("name is required")
	}
	if !in.Position.Valid() {
		return nil, apperror.Validationf("position must be one of GK, DEF, MID, ATT, got %q", in.Position)
	}
	if in.Age < 0 {
		return nil, apperror.Validation("age must not be negative")
	}

	req := &PlayerRegistrationRequest{
		UserID:      userID,
		Name:        in.Name,
		Position:    in.Position,
		Nationality: in.Nationality,
		Age:         in.Age,
		PhotoURL:    in.PhotoURL,
		Notes:       in.Notes,
		Status:      StatusPending,
	}
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		u, err := user.NewUserRepository(tx).Get(ctx, userID)
		if err != nil {
			return err
		}
		if u.PlayerCardID != nil && *u.PlayerCardID != "" {
			return apperror.Conflict("user already has a player card")
		}
		requests := NewRegistrationRepository(tx)
		mine, err := requests.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, r := range mine {
			if r.Status == StatusPending {
				return apperror.Conflict("a registration request is already pending")
			}
		}
		return requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PlayerRegistrationRequest, error) {
	return s.repo().Get(ctx, id)
}

// ListByStatus lists requests in one status, or all when status is empty.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]PlayerRegistrationRequest, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.Validationf("unknown registration status %q", status)
	}
	return s.repo().ListByStatus(ctx, status)
}

func (s *Service) Mine(ctx context.Context, userID string) ([]PlayerRegistrationRequest, error) {
	return s.repo().ListByUser(ctx, userID)
}

// UpdateStatus records an admin's review. The applicant is told about an
// approval or a rejection; resetting to pending is silent.
func (s *Service) UpdateStatus(ctx context.Context, reviewerID, id string, status Status, note string) (*PlayerRegistrationRequest, error) {
	if !status.Valid() {
		return nil, apperror.Validationf("unknown registration status %q", status)
	}
	var req *PlayerRegistrationRequest
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		requests := NewRegistrationRepository(tx)
		var err error
		if req, err = requests.Get(ctx, id); err != nil {
			return err
		}
		now := models.Now()
		req.Status = status
		req.ReviewNote = strings.TrimSpace(note)
		req.ReviewedBy = reviewerID
		req.ReviewedAt = &now
		if err := requests.Save(ctx, req); err != nil {
			return err
		}

		var (
			typ        notification.Type
			title, msg string
		)
		switch status {
		case StatusApproved:
			typ, title, msg = notification.TypeRegistrationApproved, "Registration approved", "Your player card request was approved"
		case StatusRejected:
			typ, title, msg = notification.TypeCardRejected, "Registration rejected", "Your player card request was rejected"
		default:
			return nil
		}
		if req.ReviewNote != "" {
			msg += ": " + req.ReviewNote
		}
		_, err = notification.NewService(tx).Notify(ctx, req.UserID, typ, title, msg, notification.Metadata{RequestID: req.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}
