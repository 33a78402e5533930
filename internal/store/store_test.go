package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

type widget struct {
	ID        string                      `gorm:"primaryKey"`
	Name      string                      `gorm:"uniqueIndex"`
	Owner     string                      `gorm:"index"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:json"`
	Score     int                         `gorm:"not null"`
	CreatedAt time.Time                   `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime:false"`
}

type counter struct{ n int }

func (c *counter) Publish() { c.n++ }

func newTestStore(t *testing.T) (*Store, *counter) {
	t.Helper()
	db, err := Open(DriverSqlite, filepath.Join(t.TempDir(), "store.db"), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	feed := &counter{}
	return New(db, feed), feed
}

func sample(id, name string) *widget {
	now := time.Date(2024, 5, 1, 12, 30, 0, 123000, time.UTC)
	return &widget{ID: id, Name: name, Owner: "o1", Tags: []string{"a", "b"}, Score: 7, CreatedAt: now, UpdatedAt: now}
}

func TestPutGetRoundTrip(t *testing.T) {
	st, feed := newTestStore(t)
	widgets := NewCollection[widget](st, "widget", "owner")
	ctx := context.Background()

	in := sample("w1", "first")
	if err := widgets.Put(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}
	out, err := widgets.Get(ctx, "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	want, _ := json.Marshal(in)
	got, _ := json.Marshal(out)
	if string(want) != string(got) {
		t.Fatalf("round trip mismatch\nwant %s\n got %s", want, got)
	}
	if feed.n != 1 {
		t.Fatalf("expected 1 change signal, got %d", feed.n)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	st, _ := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := widgets.Put(ctx, sample("w1", "first")); err != nil {
			t.Fatalf("put #%d: %v", i, err)
		}
	}
	all, err := widgets.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
}

func TestPutReplacesFields(t *testing.T) {
	st, _ := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")
	ctx := context.Background()

	w := sample("w1", "first")
	if err := widgets.Put(ctx, w); err != nil {
		t.Fatalf("put: %v", err)
	}
	w.Score = 99
	w.Tags = []string{"z"}
	if err := widgets.Put(ctx, w); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := widgets.Get(ctx, "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != 99 || len(got.Tags) != 1 || got.Tags[0] != "z" {
		t.Fatalf("expected replaced record, got %+v", got)
	}
}

func TestUniqueViolationIsConflict(t *testing.T) {
	st, _ := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")
	ctx := context.Background()

	if err := widgets.Put(ctx, sample("w1", "same")); err != nil {
		t.Fatalf("put: %v", err)
	}
	err := widgets.Put(ctx, sample("w2", "same"))
	if !apperror.Is(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := widgets.Get(ctx, "w1"); err != nil {
		t.Fatalf("first record must survive: %v", err)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")

	_, err := widgets.Get(context.Background(), "nope")
	if !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetByIndex(t *testing.T) {
	st, _ := newTestStore(t)
	widgets := NewCollection[widget](st, "widget", "owner")
	ctx := context.Background()

	a := sample("w1", "a")
	b := sample("w2", "b")
	b.Owner = "o2"
	for _, w := range []*widget{a, b} {
		if err := widgets.Put(ctx, w); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	got, err := widgets.GetByIndex(ctx, "owner", "o2")
	if err != nil {
		t.Fatalf("get by index: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w2" {
		t.Fatalf("expected only w2, got %+v", got)
	}

	if _, err := widgets.GetByIndex(ctx, "score", 7); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for unknown index, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st, feed := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")
	ctx := context.Background()

	if err := widgets.Put(ctx, sample("w1", "a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := widgets.Delete(ctx, "w1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if feed.n != 2 {
		t.Fatalf("expected 2 change signals, got %d", feed.n)
	}
	if err := widgets.Delete(ctx, "w1"); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if feed.n != 2 {
		t.Fatalf("failed delete must not signal, got %d", feed.n)
	}
}

func TestTransactionPublishesOnceAfterCommit(t *testing.T) {
	st, feed := newTestStore(t)
	ctx := context.Background()

	err := st.Transaction(ctx, func(tx *Store) error {
		widgets := NewCollection[widget](tx, "widget")
		if err := widgets.Put(ctx, sample("w1", "a")); err != nil {
			return err
		}
		return widgets.Put(ctx, sample("w2", "b"))
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if feed.n != 1 {
		t.Fatalf("expected 1 change signal, got %d", feed.n)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	st, feed := newTestStore(t)
	ctx := context.Background()
	boom := apperror.Validation("boom")

	err := st.Transaction(ctx, func(tx *Store) error {
		widgets := NewCollection[widget](tx, "widget")
		if err := widgets.Put(ctx, sample("w1", "a")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if feed.n != 0 {
		t.Fatalf("rolled back transaction must not signal, got %d", feed.n)
	}
	if _, err := NewCollection[widget](st, "widget").Get(ctx, "w1"); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected write to be rolled back, got %v", err)
	}
}

func TestUpdateSignalsOnlyWhenRowsChange(t *testing.T) {
	st, feed := newTestStore(t)
	widgets := NewCollection[widget](st, "widget")
	ctx := context.Background()

	if err := widgets.Put(ctx, sample("w1", "a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	n, err := widgets.Update(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", "missing") }, map[string]any{"score": 1})
	if err != nil || n != 0 {
		t.Fatalf("expected no rows, got %d, %v", n, err)
	}
	if feed.n != 1 {
		t.Fatalf("expected no extra signal, got %d", feed.n)
	}
	n, err = widgets.Update(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", "w1") }, map[string]any{"score": 1})
	if err != nil || n != 1 {
		t.Fatalf("expected 1 row, got %d, %v", n, err)
	}
	if feed.n != 2 {
		t.Fatalf("expected a signal for the update, got %d", feed.n)
	}
}
