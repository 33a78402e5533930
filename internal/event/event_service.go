package event

import (
	"context"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type CreateInput struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	StartDate       time.Time  `json:"startDate" binding:"required"`
	EndDate         *time.Time `json:"endDate"`
	Status          string     `json:"status"`
	MaxParticipants int        `json:"maxParticipants" binding:"gte=0"`
}

type UpdateInput struct {
	Name            *string    `json:"name" binding:"omitempty,min=1"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	Status          *string    `json:"status"`
	MaxParticipants *int       `json:"maxParticipants" binding:"omitempty,gte=0"`
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() EventRepository {
	return NewEventRepository(s.st)
}

func stampPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := models.Stamp(*t)
	return &u
}

func checkDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperror.Validation("endDate must not be before startDate")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("event name is required")
	}
	status := StatusUpcoming
	if in.Status != "" {
		var err error
		if status, err = ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := checkDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	e := &Event{
		Name:            name,
		Description:     in.Description,
		Location:        in.Location,
		StartDate:       models.Stamp(in.StartDate),
		EndDate:         stampPtr(in.EndDate),
		Status:          status,
		MaxParticipants: in.MaxParticipants,
	}
	if err := s.repo().Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo().Get(ctx, id)
}

// List returns every event, or those in one status when status is set.
func (s *Service) List(ctx context.Context, status string) ([]Event, error) {
	if status == "" {
		return s.repo().GetAll(ctx)
	}
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo().ListByStatus(ctx, st)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Event, error) {
	events := s.repo()
	e, err := events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("event name must not be empty")
		}
		e.Name = name
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.StartDate != nil {
		e.StartDate = models.Stamp(*in.StartDate)
	}
	if in.EndDate != nil {
		e.EndDate = stampPtr(in.EndDate)
	}
	if in.Status != nil {
		if e.Status, err = ParseStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.MaxParticipants != nil {
		e.MaxParticipants = *in.MaxParticipants
	}
	if err := checkDates(e.StartDate, e.EndDate); err != nil {
		return nil, err
	}
	if err := events.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo().Delete(ctx, id)
}

// RegisterTeam enters a team into the event as pending. MaxParticipants is
// informational and not checked.
func (s *Service) RegisterTeam(ctx context.Context, actor team.Actor, eventID, teamID string) (*Event, error) {
	var e *Event
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		events := NewEventRepository(tx)
		var err error
		if e, err = events.Get(ctx, eventID); err != nil {
			return err
		}
		if e.Status == StatusCompleted || e.Status == StatusCancelled {
			return apperror.Validationf("event is %s", e.Status)
		}
		t, err := team.NewTeamRepository(tx).GetTeamByID(ctx, teamID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && t.CaptainID != actor.UserID {
			return apperror.Forbidden("only the team captain can register the team")
		}
		if e.Registration(teamID) != nil {
			return apperror.Conflict("team is already registered for this event")
		}
		now := models.Now()
		e.Registrations = append(e.Registrations, TeamRegistration{
			TeamID:       teamID,
			Status:       RegistrationPending,
			RegisteredAt: now,
			UpdatedAt:    now,
		})
		return events.Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SetRegistrationStatus moves a team's registration to any status, including
// from approved back to rejected, and tells the captain.
func (s *Service) SetRegistrationStatus(ctx context.Context, eventID, teamID string, status RegistrationStatus) (*Event, error) {
	if !status.Valid() {
		return nil, apperror.Validationf("unknown registration status %q", status)
	}
	var e *Event
	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		events := NewEventRepository(tx)
		var err error
		if e, err = events.Get(ctx, eventID); err != nil {
			return err
		}
		reg := e.Registration(teamID)
		if reg == nil {
			return apperror.NotFound("team is not registered for this event")
		}
		reg.Status = status
		reg.UpdatedAt = models.Now()
		if err := events.Save(ctx, e); err != nil {
			return err
		}

		t, err := team.NewTeamRepository(tx).GetTeamByID(ctx, teamID)
		if apperror.Is(err, apperror.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = notification.NewService(tx).Notify(ctx, t.CaptainID, notification.TypeEventRegistration,
			"Event registration "+string(status),
			t.Name+" registration for "+e.Name+" is "+string(status),
			notification.Metadata{EventID: e.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ApprovedTeams returns the teams whose registration is approved, in
// registration order. Teams deleted since are skipped.
func (s *Service) ApprovedTeams(ctx context.Context, eventID string) ([]team.Team, error) {
	e, err := s.repo().Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	teams := team.NewTeamRepository(s.st)
	out := []team.Team{}
	for _, id := range e.ApprovedTeamIDs() {
		t, err := teams.GetTeamByID(ctx, id)
		if apperror.Is(err, apperror.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}
