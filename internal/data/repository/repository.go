package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scope narrows a query. It is a plain GORM scope so callers can compose
// conditions, joins and ordering.
type Scope func(*gorm.DB) *gorm.DB

// Where builds a Scope from a GORM condition.
func Where(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// ByID matches the entity's integer primary key.
func ByID(id int) Scope {
	return Where("id = ?", id)
}

// Repository gives access to one entity kind through the session of the
// unit of work that owns it. Mutations are staged and written by
// UnitOfWork.Complete.
type Repository[T any] struct {
	uow  *UnitOfWork
	name string
	log  *zap.Logger
}

func newRepository[T any](uow *UnitOfWork, name string) *Repository[T] {
	return &Repository[T]{
		uow:  uow,
		name: name,
		log:  uow.log.With(zap.String("repository", name)),
	}
}

// GetAll returns a lazy query over all rows. Related data is loaded only for
// the given include paths, e.g. "User" or "OrderDetails.Product".
func (r *Repository[T]) GetAll(ctx context.Context, includes ...string) *Query[T] {
	return newQuery[T](r.uow.session(ctx).Model(new(T)), includes)
}

// Get returns the first row matching scope, or nil when there is none.
func (r *Repository[T]) Get(ctx context.Context, scope Scope, includes ...string) (*T, error) {
	item, err := r.GetAll(ctx, includes...).Where(scope).First()
	if err != nil {
		r.log.Error("Failed to get "+r.name, zap.Error(err))
		return nil, fmt.Errorf("get %s: %w", r.name, err)
	}
	return item, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int, includes ...string) (*T, error) {
	item, err := r.GetAll(ctx, includes...).Where(ByID(id)).First()
	if err != nil {
		r.log.Error("Failed to get "+r.name+" by ID", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("get %s by ID %d: %w", r.name, id, err)
	}
	return item, nil
}

func (r *Repository[T]) Find(ctx context.Context, scope Scope, includes ...string) ([]T, error) {
	items, err := r.GetAll(ctx, includes...).Where(scope).List()
	if err != nil {
		r.log.Error("Failed to find "+r.name, zap.Error(err))
		return nil, fmt.Errorf("find %s: %w", r.name, err)
	}
	return items, nil
}

// Any reports whether a row matches scope without loading it.
func (r *Repository[T]) Any(ctx context.Context, scope Scope) (bool, error) {
	exists, err := r.GetAll(ctx).Where(scope).Exists()
	if err != nil {
		r.log.Error("Failed to check "+r.name+" existence", zap.Error(err))
		return false, fmt.Errorf("check %s existence: %w", r.name, err)
	}
	return exists, nil
}

func (r *Repository[T]) Add(entity *T) {
	r.uow.stage(changeAdd, r.name, entity)
}

func (r *Repository[T]) Update(entity *T) {
	r.uow.stage(changeUpdate, r.name, entity)
}

func (r *Repository[T]) Delete(entity *T) {
	r.uow.stage(changeDelete, r.name, entity)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
