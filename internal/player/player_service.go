package player

import (
	"context"
	"strings"

	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

const maxRating = 99

type CreateInput struct {
	UserID        string     `json:"userId"`
	Name          string     `json:"name" binding:"required"`
	Position      Position   `json:"position" binding:"required"`
	Nationality   string     `json:"nationality"`
	Age           int        `json:"age" binding:"gte=0"`
	PhotoURL      string     `json:"photoUrl"`
	OverallRating int        `json:"overallRating" binding:"gte=0,lte=99"`
	Attributes    Attributes `json:"attributes"`
}

type UpdateInput struct {
	Name          *string     `json:"name" binding:"omitempty,min=1"`
	Position      *Position   `json:"position"`
	Nationality   *string     `json:"nationality"`
	Age           *int        `json:"age" binding:"omitempty,gte=0"`
	PhotoURL      *string     `json:"photoUrl"`
	OverallRating *int        `json:"overallRating" binding:"omitempty,gte=0,lte=99"`
	Attributes    *Attributes `json:"attributes"`
}

type Service struct {
	st *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{st: st}
}

func (s *Service) repo() PlayerRepository {
	return NewPlayerRepository(s.st)
}

func validateCreate(in *CreateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.UserID = strings.TrimSpace(in.UserID)
	if in.Name == "" {
		return apperror.Validation("name is required")
	}
	if !in.Position.Valid() {
		return apperror.Validationf("position must be one of GK, DEF, MID, ATT, got %q", in.Position)
	}
	if in.OverallRating < 0 || in.OverallRating > maxRating {
		return apperror.Validation("overallRating must be between 0 and 99")
	}
	if in.Age < 0 {
		return apperror.Validation("age must not be negative")
	}
	return nil
}

// Create builds a player card. When a user id is given the card is linked to
// that user, who may hold only one.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Player, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	p := &Player{
		Name:          in.Name,
		Position:      in.Position,
		Nationality:   in.Nationality,
		Age:           in.Age,
		PhotoURL:      in.PhotoURL,
		OverallRating: in.OverallRating,
		CardType:      CardTier(in.OverallRating),
	}
	p.SetAttributes(in.Attributes)

	err := s.st.Transaction(ctx, func(tx *store.Store) error {
		players := NewPlayerRepository(tx)
		if in.UserID == "" {
			return players.Create(ctx, p)
		}

		users := user.NewUserRepository(tx)
		u, err := users.Get(ctx, in.UserID)
		if err != nil {
			return err
		}
		if u.PlayerCardID != nil && *u.PlayerCardID != "" {
			return apperror.Conflict("user already has a player card")
		}
		if _, err := players.GetByUser(ctx, u.ID); err == nil {
			return apperror.Conflict("user already has a player card")
		} else if !apperror.Is(err, apperror.KindNotFound) {
			return err
		}

		p.UserID = &u.ID
		if err := players.Create(ctx, p); err != nil {
			return err
		}
		_, err = users.LinkPlayerCard(ctx, u.ID, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Player, error) {
	return s.repo().Get(ctx, id)
}

func (s *Service) List(ctx context.Context, page, limit int, filters map[string]string) ([]Player, int64, error) {
	return s.repo().List(ctx, page, limit, filters)
}

// Roster lists the players whose team is teamID.
func (s *Service) Roster(ctx context.Context, teamID string) ([]Player, error) {
	return s.repo().ListByTeam(ctx, teamID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Player, error) {
	repo := s.repo()
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("name must not be empty")
		}
		p.Name = name
	}
	if in.Position != nil {
		if !in.Position.Valid() {
			return nil, apperror.Validationf("position must be one of GK, DEF, MID, ATT, got %q", *in.Position)
		}
		p.Position = *in.Position
	}
	if in.Nationality != nil {
		p.Nationality = *in.Nationality
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, apperror.Validation("age must not be negative")
		}
		p.Age = *in.Age
	}
	if in.PhotoURL != nil {
		p.PhotoURL = *in.PhotoURL
	}
	if in.OverallRating != nil {
		if *in.OverallRating < 0 || *in.OverallRating > maxRating {
			return nil, apperror.Validation("overallRating must be between 0 and 99")
		}
		p.OverallRating = *in.OverallRating
		p.CardType = CardTier(p.OverallRating)
	}
	if in.Attributes != nil {
		p.SetAttributes(*in.Attributes)
	}
	if err := repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the player and releases the owning user's card link.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.st.Transaction(ctx, func(tx *store.Store) error {
		players := NewPlayerRepository(tx)
		p, err := players.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := players.Delete(ctx, id); err != nil {
			return err
		}
		if p.UserID == nil {
			return nil
		}
		users := user.NewUserRepository(tx)
		u, err := users.Get(ctx, *p.UserID)
		if apperror.Is(err, apperror.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if u.PlayerCardID != nil && *u.PlayerCardID == id {
			u.PlayerCardID = nil
			return users.Save(ctx, u)
		}
		return nil
	})
}
