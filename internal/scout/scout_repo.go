package scout

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

type ScoutRepository interface {
	GetProfile(ctx context.Context, scoutID string) (*ScoutProfile, error)
	SaveProfile(ctx context.Context, p *ScoutProfile) error
	AppendActivity(ctx context.Context, a *ScoutActivity) error
	ListActivity(ctx context.Context, scoutID string) ([]ScoutActivity, error)
	GetAllActivity(ctx context.Context) ([]ScoutActivity, error)
	GetAllProfiles(ctx context.Context) ([]ScoutProfile, error)
}

type scoutRepository struct {
	profiles   *store.Collection[ScoutProfile]
	activities *store.Collection[ScoutActivity]
}

func NewScoutRepository(st *store.Store) ScoutRepository {
	return &scoutRepository{
		profiles:   store.NewCollection[ScoutProfile](st, "scout profile"),
		activities: store.NewCollection[ScoutActivity](st, "scout activity", "scout_id"),
	}
}

func (r *scoutRepository) GetProfile(ctx context.Context, scoutID string) (*ScoutProfile, error) {
	return r.profiles.Get(ctx, scoutID)
}

func (r *scoutRepository) SaveProfile(ctx context.Context, p *ScoutProfile) error {
	p.Touch(models.Now())
	return r.profiles.Put(ctx, p)
}

func (r *scoutRepository) AppendActivity(ctx context.Context, a *ScoutActivity) error {
	if a.ID == "" {
		a.ID = store.NewID()
	}
	return r.activities.Put(ctx, a)
}

// ListActivity returns the scout's log, newest first.
func (r *scoutRepository) ListActivity(ctx context.Context, scoutID string) ([]ScoutActivity, error) {
	return r.activities.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("scout_id = ?", scoutID).Order("viewed_at desc").Order("id desc")
	})
}

func (r *scoutRepository) GetAllActivity(ctx context.Context) ([]ScoutActivity, error) {
	return r.activities.GetAll(ctx)
}

func (r *scoutRepository) GetAllProfiles(ctx context.Context) ([]ScoutProfile, error) {
	return r.profiles.GetAll(ctx)
}
