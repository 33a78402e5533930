package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
)

// Collection is the CRUD contract for one record type keyed by an "id"
// column. Only the columns named at construction can be used as indexes.
type Collection[T any] struct {
	st      *Store
	entity  string
	indexes map[string]struct{}
}

func NewCollection[T any](st *Store, entity string, indexes ...string) *Collection[T] {
	idx := make(map[string]struct{}, len(indexes))
	for _, name := range indexes {
		idx[name] = struct{}{}
	}
	return &Collection[T]{st: st, entity: entity, indexes: idx}
}

// Put inserts rec or replaces the stored record with the same id.
func (c *Collection[T]) Put(ctx context.Context, rec *T) error {
	err := c.st.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		return translate(err, c.entity)
	}
	c.st.changed()
	return nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := c.st.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, translate(err, c.entity)
	}
	return &rec, nil
}

// GetAll returns every record in no particular order.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	var recs []T
	if err := c.st.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, translate(err, c.entity)
	}
	return recs, nil
}

func (c *Collection[T]) GetByIndex(ctx context.Context, index string, value any) ([]T, error) {
	if _, ok := c.indexes[index]; !ok {
		return nil, apperror.Validationf("%s has no index %q", c.entity, index)
	}
	var recs []T
	err := c.st.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: index}, Value: value}).
		Find(&recs).Error
	if err != nil {
		return nil, translate(err, c.entity)
	}
	return recs, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res := c.st.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error, c.entity)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(c.entity + " not found")
	}
	c.st.changed()
	return nil
}

// Query starts a read scoped to the collection's table.
func (c *Collection[T]) Query(ctx context.Context) *gorm.DB {
	return c.st.db.WithContext(ctx).Model(new(T))
}

// Find runs a filtered read built by scope.
func (c *Collection[T]) Find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	var recs []T
	if err := scope(c.Query(ctx)).Find(&recs).Error; err != nil {
		return nil, translate(err, c.entity)
	}
	return recs, nil
}

// Count counts records matched by scope.
func (c *Collection[T]) Count(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	if err := scope(c.Query(ctx)).Count(&n).Error; err != nil {
		return 0, translate(err, c.entity)
	}
	return n, nil
}

// Update applies column updates to the records matched by scope and
// returns the number of rows touched.
func (c *Collection[T]) Update(ctx context.Context, scope func(*gorm.DB) *gorm.DB, values map[string]any) (int64, error) {
	res := scope(c.Query(ctx)).Updates(values)
	if res.Error != nil {
		return 0, translate(res.Error, c.entity)
	}
	if res.RowsAffected > 0 {
		c.st.changed()
	}
	return res.RowsAffected, nil
}
