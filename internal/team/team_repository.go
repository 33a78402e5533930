package team

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	// Team operations
	CreateTeam(ctx context.Context, t *Team) error
	GetTeamByID(ctx context.Context, id string) (*Team, error)
	GetTeamByName(ctx context.Context, name string) (*Team, error)
	GetAllTeams(ctx context.Context) ([]Team, error)
	GetTeamsByCaptain(ctx context.Context, captainID string) ([]Team, error)
	UpdateTeam(ctx context.Context, t *Team) error
	DeleteTeam(ctx context.Context, id string) error

	// TeamInvitation operations
	CreateTeamInvitation(ctx context.Context, inv *TeamInvitation) error
	GetTeamInvitationByID(ctx context.Context, id string) (*TeamInvitation, error)
	GetTeamInvitationsByTeamID(ctx context.Context, teamID string) ([]TeamInvitation, error)
	GetTeamInvitationsByPlayerID(ctx context.Context, playerID string) ([]TeamInvitation, error)
	GetPendingInvitation(ctx context.Context, teamID, playerID string) (*TeamInvitation, error)
	UpdateTeamInvitation(ctx context.Context, inv *TeamInvitation) error
	GetAllInvitations(ctx context.Context) ([]TeamInvitation, error)
}

type teamRepository struct {
	teams       *store.Collection[Team]
	invitations *store.Collection[TeamInvitation]
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(st *store.Store) TeamRepository {
	return &teamRepository{
		teams:       store.NewCollection[Team](st, "team", "name", "captain_id"),
		invitations: store.NewCollection[TeamInvitation](st, "team invitation", "team_id", "player_id"),
	}
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(ctx context.Context, t *Team) error {
	if t.ID == "" {
		t.ID = store.NewID()
	}
	t.Touch(models.Now())
	return r.teams.Put(ctx, t)
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id string) (*Team, error) {
	return r.teams.Get(ctx, id)
}

func (r *teamRepository) GetTeamByName(ctx context.Context, name string) (*Team, error) {
	found, err := r.teams.GetByIndex(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.NotFound("team not found")
	}
	return &found[0], nil
}

// GetAllTeams returns teams in creation order, the order ranking ties keep.
func (r *teamRepository) GetAllTeams(ctx context.Context) ([]Team, error) {
	return r.teams.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc").Order("id asc")
	})
}

func (r *teamRepository) GetTeamsByCaptain(ctx context.Context, captainID string) ([]Team, error) {
	return r.teams.GetByIndex(ctx, "captain_id", captainID)
}

func (r *teamRepository) UpdateTeam(ctx context.Context, t *Team) error {
	t.Touch(models.Now())
	return r.teams.Put(ctx, t)
}

func (r *teamRepository) DeleteTeam(ctx context.Context, id string) error {
	return r.teams.Delete(ctx, id)
}

// --- TeamInvitation Operations ---

func (r *teamRepository) CreateTeamInvitation(ctx context.Context, inv *TeamInvitation) error {
	if inv.ID == "" {
		inv.ID = store.NewID()
	}
	inv.Touch(models.Now())
	return r.invitations.Put(ctx, inv)
}

func (r *teamRepository) GetTeamInvitationByID(ctx context.Context, id string) (*TeamInvitation, error) {
	return r.invitations.Get(ctx, id)
}

func (r *teamRepository) GetTeamInvitationsByTeamID(ctx context.Context, teamID string) ([]TeamInvitation, error) {
	return r.invitations.GetByIndex(ctx, "team_id", teamID)
}

func (r *teamRepository) GetTeamInvitationsByPlayerID(ctx context.Context, playerID string) ([]TeamInvitation, error) {
	return r.invitations.GetByIndex(ctx, "player_id", playerID)
}

func (r *teamRepository) GetPendingInvitation(ctx context.Context, teamID, playerID string) (*TeamInvitation, error) {
	found, err := r.invitations.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("team_id = ? AND player_id = ? AND status = ?", teamID, playerID, InvitationPending)
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.NotFound("team invitation not found")
	}
	return &found[0], nil
}

func (r *teamRepository) UpdateTeamInvitation(ctx context.Context, inv *TeamInvitation) error {
	inv.Touch(models.Now())
	return r.invitations.Put(ctx, inv)
}

func (r *teamRepository) GetAllInvitations(ctx context.Context) ([]TeamInvitation, error) {
	return r.invitations.GetAll(ctx)
}
