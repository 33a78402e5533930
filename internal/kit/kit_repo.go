package kit

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

type KitRepository interface {
	CreateKit(ctx context.Context, k *Kit) error
	GetKit(ctx context.Context, id string) (*Kit, error)
	GetAllKits(ctx context.Context) ([]Kit, error)
	SaveKit(ctx context.Context, k *Kit) error
	DeleteKit(ctx context.Context, id string) error

	CreateRequest(ctx context.Context, r *KitRequest) error
	GetRequest(ctx context.Context, id string) (*KitRequest, error)
	GetAllRequests(ctx context.Context) ([]KitRequest, error)
	ListRequestsByUser(ctx context.Context, userID string) ([]KitRequest, error)
	SaveRequest(ctx context.Context, r *KitRequest) error
}

type kitRepository struct {
	kits     *store.Collection[Kit]
	requests *store.Collection[KitRequest]
}

func NewKitRepository(st *store.Store) KitRepository {
	return &kitRepository{
		kits:     store.NewCollection[Kit](st, "kit", "team_id"),
		requests: store.NewCollection[KitRequest](st, "kit request", "user_id", "status"),
	}
}

func (r *kitRepository) CreateKit(ctx context.Context, k *Kit) error {
	if k.ID == "" {
		k.ID = store.NewID()
	}
	k.Touch(models.Now())
	return r.kits.Put(ctx, k)
}

func (r *kitRepository) GetKit(ctx context.Context, id string) (*Kit, error) {
	return r.kits.Get(ctx, id)
}

func (r *kitRepository) GetAllKits(ctx context.Context) ([]Kit, error) {
	return r.kits.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("name asc").Order("id")
	})
}

func (r *kitRepository) SaveKit(ctx context.Context, k *Kit) error {
	k.Touch(models.Now())
	return r.kits.Put(ctx, k)
}

func (r *kitRepository) DeleteKit(ctx context.Context, id string) error {
	return r.kits.Delete(ctx, id)
}

func (r *kitRepository) CreateRequest(ctx context.Context, req *KitRequest) error {
	if req.ID == "" {
		req.ID = store.NewID()
	}
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}

func (r *kitRepository) GetRequest(ctx context.Context, id string) (*KitRequest, error) {
	return r.requests.Get(ctx, id)
}

// GetAllRequests returns orders newest first.
func (r *kitRepository) GetAllRequests(ctx context.Context) ([]KitRequest, error) {
	return r.requests.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc").Order("id")
	})
}

func (r *kitRepository) ListRequestsByUser(ctx context.Context, userID string) ([]KitRequest, error) {
	return r.requests.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at desc").Order("id")
	})
}

func (r *kitRepository) SaveRequest(ctx context.Context, req *KitRequest) error {
	req.Touch(models.Now())
	return r.requests.Put(ctx, req)
}
