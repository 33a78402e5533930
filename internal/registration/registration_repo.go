package registration

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

type RegistrationRepository interface {
	Create(ctx context.Context, r *PlayerRegistrationRequest) error
	Get(ctx context.Context, id string) (*PlayerRegistrationRequest, error)
	GetAll(ctx context.Context) ([]PlayerRegistrationRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]PlayerRegistrationRequest, error)
	ListByUser(ctx context.Context, userID string) ([]PlayerRegistrationRequest, error)
	Save(ctx context.Context, r *PlayerRegistrationRequest) error
}

type registrationRepository struct {
	requests *store.Collection[PlayerRegistrationRequest]
}

func NewRegistrationRepository(st *store.Store) RegistrationRepository {
	return &registrationRepository{
		requests: store.NewCollection[PlayerRegistrationRequest](st, "registration request", "status", "user_id"),
	}
}

func (r *registrationRepository) Create(ctx context.Context, req *PlayerRegistrationRequest) error {
	if req.ID == "" {
		req.ID = store.NewID()
	}
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}

func (r *registrationRepository) Get(ctx context.Context, id string) (*PlayerRegistrationRequest, error) {
	return r.requests.Get(ctx, id)
}

func (r *registrationRepository) GetAll(ctx context.Context) ([]PlayerRegistrationRequest, error) {
	return r.requests.GetAll(ctx)
}

// ListByStatus returns requests oldest first, the order admins review them in.
func (r *registrationRepository) ListByStatus(ctx context.Context, status Status) ([]PlayerRegistrationRequest, error) {
	return r.requests.Find(ctx, func(db *gorm.DB) *gorm.DB {
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db.Order("created_at asc").Order("id")
	})
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]PlayerRegistrationRequest, error) {
	return r.requests.GetByIndex(ctx, "user_id", userID)
}

func (r *registrationRepository) Save(ctx context.Context, req *PlayerRegistrationRequest) error {
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}
