package event

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	GetAll(ctx context.Context) ([]Event, error)
	ListByStatus(ctx context.Context, status Status) ([]Event, error)
	Save(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	events *store.Collection[Event]
}

func NewEventRepository(st *store.Store) EventRepository {
	return &eventRepository{events: store.NewCollection[Event](st, "event", "status")}
}

func (r *eventRepository) Create(ctx context.Context, e *Event) error {
	if e.ID == "" {
		e.ID = store.NewID()
	}
	if e.Registrations == nil {
		e.Registrations = datatypes.JSONSlice[TeamRegistration]{}
	}
	e.Touch(models.Now())
	return r.events.Put(ctx, e)
}

func (r *eventRepository) Get(ctx context.Context, id string) (*Event, error) {
	return r.events.Get(ctx, id)
}

// GetAll returns events by start date, soonest first.
func (r *eventRepository) GetAll(ctx context.Context) ([]Event, error) {
	return r.events.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("start_date asc").Order("id asc")
	})
}

func (r *eventRepository) ListByStatus(ctx context.Context, status Status) ([]Event, error) {
	return r.events.GetByIndex(ctx, "status", status)
}

func (r *eventRepository) Save(ctx context.Context, e *Event) error {
	e.Touch(models.Now())
	return r.events.Put(ctx, e)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.events.Delete(ctx, id)
}
