package repository

import (
	"gorm.io/gorm"
)

// Query is a lazy, composable query plan. Nothing runs until List, First,
// Count or Exists is called. Each builder returns a new Query and leaves the
// receiver untouched.
type Query[T any] struct {
	db       *gorm.DB
	includes []string
}

func newQuery[T any](db *gorm.DB, includes []string) *Query[T] {
	return &Query[T]{db: db.Session(&gorm.Session{}), includes: includes}
}

func (q *Query[T]) derive(db *gorm.DB) *Query[T] {
	return &Query[T]{db: db.Session(&gorm.Session{}), includes: q.includes}
}

func (q *Query[T]) Where(scope Scope) *Query[T] {
	if scope == nil {
		return q
	}
	return q.derive(scope(q.db))
}

func (q *Query[T]) OrderBy(column string) *Query[T] {
	return q.derive(q.db.Order(column))
}

func (q *Query[T]) OrderByDesc(column string) *Query[T] {
	return q.derive(q.db.Order(column + " DESC"))
}

func (q *Query[T]) window(offset, limit int) *Query[T] {
	return q.derive(q.db.Offset(offset).Limit(limit))
}

// loaded attaches eager loads. They are kept off the base plan so Count and
// Exists never trigger them.
func (q *Query[T]) loaded() *gorm.DB {
	db := q.db
	for _, include := range q.includes {
		db = db.Preload(include)
	}
	return db
}

func (q *Query[T]) List() ([]T, error) {
	var items []T
	if err := q.loaded().Find(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// First returns the first row of the plan, or nil when it is empty.
func (q *Query[T]) First() (*T, error) {
	var item T
	if err := q.loaded().First(&item).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (q *Query[T]) Count() (int64, error) {
	var count int64
	if err := q.db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (q *Query[T]) Exists() (bool, error) {
	var exists bool
	if err := q.db.Select("count(*) > 0").Find(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}
