package player

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type PlayerRepository interface {
	Create(ctx context.Context, p *Player) error
	Get(ctx context.Context, id string) (*Player, error)
	GetAll(ctx context.Context) ([]Player, error)
	List(ctx context.Context, page, limit int, filters map[string]string) ([]Player, int64, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByUser(ctx context.Context, userID string) (*Player, error)
	Save(ctx context.Context, p *Player) error
	Delete(ctx context.Context, id string) error
}

type playerRepository struct {
	players *store.Collection[Player]
}

func NewPlayerRepository(st *store.Store) PlayerRepository {
	return &playerRepository{players: store.NewCollection[Player](st, "player", "team_id", "user_id")}
}

func (r *playerRepository) Create(ctx context.Context, p *Player) error {
	if p.ID == "" {
		p.ID = store.NewID()
	}
	p.Touch(models.Now())
	return r.players.Put(ctx, p)
}

func (r *playerRepository) Get(ctx context.Context, id string) (*Player, error) {
	return r.players.Get(ctx, id)
}

func (r *playerRepository) GetAll(ctx context.Context) ([]Player, error) {
	return r.players.GetAll(ctx)
}

func (r *playerRepository) List(ctx context.Context, page, limit int, filters map[string]string) ([]Player, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if pos, ok := filters["position"]; ok {
			db = db.Where("position = ?", pos)
		}
		if teamID, ok := filters["team_id"]; ok {
			db = db.Where("team_id = ?", teamID)
		}
		if name, ok := filters["name"]; ok {
			db = db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
		}
		return db
	}

	total, err := r.players.Count(ctx, scope)
	if err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	players, err := r.players.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return scope(db).Order("overall_rating desc").Order("id").Offset(offset).Limit(limit)
	})
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

// ListByTeam returns the team's roster.
func (r *playerRepository) ListByTeam(ctx context.Context, teamID string) ([]Player, error) {
	return r.players.GetByIndex(ctx, "team_id", teamID)
}

func (r *playerRepository) GetByUser(ctx context.Context, userID string) (*Player, error) {
	found, err := r.players.GetByIndex(ctx, "user_id", userID)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.NotFound("player not found")
	}
	return &found[0], nil
}

func (r *playerRepository) Save(ctx context.Context, p *Player) error {
	p.Touch(models.Now())
	return r.players.Put(ctx, p)
}

func (r *playerRepository) Delete(ctx context.Context, id string) error {
	return r.players.Delete(ctx, id)
}
