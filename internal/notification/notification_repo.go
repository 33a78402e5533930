package notification

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/models"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	GetAll(ctx context.Context) ([]Notification, error)
	ListForUser(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct {
	notifications *store.Collection[Notification]
}

func NewNotificationRepository(st *store.Store) NotificationRepository {
	return &notificationRepository{notifications: store.NewCollection[Notification](st, "notification", "recipient_id")}
}

func (r *notificationRepository) Create(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = store.NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = models.Now()
	}
	return r.notifications.Put(ctx, n)
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*Notification, error) {
	return r.notifications.Get(ctx, id)
}

func (r *notificationRepository) GetAll(ctx context.Context) ([]Notification, error) {
	return r.notifications.GetAll(ctx)
}

// ListForUser returns the recipient's inbox, newest first.
func (r *notificationRepository) ListForUser(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	return r.notifications.Find(ctx, func(db *gorm.DB) *gorm.DB {
		db = db.Where("recipient_id = ?", recipientID)
		if unreadOnly {
			db = db.Where("is_read = ?", false)
		}
		return db.Order("created_at desc").Order("id desc")
	})
}

func (r *notificationRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return r.notifications.Count(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("recipient_id = ? AND is_read = ?", recipientID, false)
	})
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.notifications.Update(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND is_read = ?", id, false)
	}, map[string]any{"is_read": true, "read_at": models.Now()})
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return r.notifications.Update(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("recipient_id = ? AND is_read = ?", recipientID, false)
	}, map[string]any{"is_read": true, "read_at": models.Now()})
}
