// Package store is the persistence layer: typed record collections over a
// gorm connection that emit a change signal after every write.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// Publisher receives a payload-free signal whenever a write succeeds.
type Publisher interface {
	Publish()
}

// Store binds collections to a database handle and a change publisher.
type Store struct {
	db   *gorm.DB
	feed Publisher
}

// New wraps db. feed may be nil.
func New(db *gorm.DB, feed Publisher) *Store {
	return &Store{db: db, feed: feed}
}

// DB exposes the underlying handle for ad-hoc queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperror.Storage(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

// Transaction runs fn against a transaction-bound Store. Writes made inside
// fn produce a single change signal once the transaction commits.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	pending := &txFeed{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, feed: pending})
	})
	if err != nil {
		return translate(err, "record")
	}
	if pending.dirty {
		s.changed()
	}
	return nil
}

func (s *Store) changed() {
	if s.feed != nil {
		s.feed.Publish()
	}
}

type txFeed struct {
	dirty bool
}

func (f *txFeed) Publish() { f.dirty = true }

// NewID returns a random opaque identifier.
func NewID() string {
	return uuid.NewString()
}

func translate(err error, entity string) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Wrap(apperror.KindConflict, entity+" already exists", err)
	default:
		return apperror.Storage(err)
	}
}
