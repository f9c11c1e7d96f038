package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stempede-store/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransactionActive = errors.New("transaction already active")
	ErrTransactionDone   = errors.New("transaction already finished")
)

// TransactionObserver is notified when an explicit transaction ends.
type TransactionObserver interface {
	ObserveTransaction(outcome string)
}

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeDelete
)

func (k changeKind) String() string {
	switch k {
	case changeAdd:
		return "insert"
	case changeUpdate:
		return "update"
	default:
		return "delete"
	}
}

type change struct {
	kind   changeKind
	name   string
	entity any
}

// UnitOfWork owns one database session for the lifetime of a single
// operation. Every repository field shares that session, so reads made
// inside a transaction see the transaction's own writes.
type UnitOfWork struct {
	ID uuid.UUID

	User           *Repository[entity.User]
	Role           *Repository[entity.Role]
	UserRole       *Repository[entity.UserRole]
	Order          *Repository[entity.Order]
	OrderDetail    *Repository[entity.OrderDetail]
	Product        *Repository[entity.Product]
	Subcategory    *Repository[entity.Subcategory]
	SupportRequest *Repository[entity.SupportRequest]

	db        *gorm.DB
	tx        *gorm.DB
	pending   []change
	collation string
	observer  TransactionObserver
	log       *zap.Logger
}

func newUnitOfWork(db *gorm.DB, collation string, observer TransactionObserver, log *zap.Logger) *UnitOfWork {
	id := uuid.New()
	u := &UnitOfWork{
		ID:        id,
		db:        db,
		collation: collation,
		observer:  observer,
		log:       log.With(zap.String("uow", id.String())),
	}

	u.User = newRepository[entity.User](u, "user")
	u.Role = newRepository[entity.Role](u, "role")
	u.UserRole = newRepository[entity.UserRole](u, "user role")
	u.Order = newRepository[entity.Order](u, "order")
	u.OrderDetail = newRepository[entity.OrderDetail](u, "order detail")
	u.Product = newRepository[entity.Product](u, "product")
	u.Subcategory = newRepository[entity.Subcategory](u, "subcategory")
	u.SupportRequest = newRepository[entity.SupportRequest](u, "support request")

	return u
}

func (u *UnitOfWork) session(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

func (u *UnitOfWork) stage(kind changeKind, name string, entity any) {
	u.pending = append(u.pending, change{kind: kind, name: name, entity: entity})
}

// Pending reports how many staged changes are waiting for Complete.
func (u *UnitOfWork) Pending() int {
	return len(u.pending)
}

// Complete writes the staged changes in staging order and returns the number
// of rows affected. Generated keys are written back into the staged
// entities. Outside an explicit transaction the flush runs in its own
// transaction.
func (u *UnitOfWork) Complete(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}

	changes := u.pending
	u.pending = nil

	if u.tx != nil {
		return u.flush(u.session(ctx), changes)
	}

	var affected int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := u.flush(tx, changes)
		affected = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (u *UnitOfWork) flush(db *gorm.DB, changes []change) (int64, error) {
	var affected int64
	for _, c := range changes {
		var result *gorm.DB
		switch c.kind {
		case changeAdd:
			result = db.Omit(clause.Associations).Create(c.entity)
		case changeUpdate:
			result = db.Omit(clause.Associations).Save(c.entity)
		case changeDelete:
			result = db.Delete(c.entity)
		}

		if result.Error != nil {
			u.log.Error("Failed to flush change",
				zap.Error(result.Error),
				zap.String("op", c.kind.String()),
				zap.String("entity", c.name),
			)
			return affected, fmt.Errorf("%s %s: %w", c.kind, c.name, result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

// Transaction is an explicit transaction opened on a unit of work.
type Transaction struct {
	uow  *UnitOfWork
	tx   *gorm.DB
	done bool
}

// BeginTransaction opens a transaction on the unit of work's session. Only
// one transaction may be open at a time.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) (*Transaction, error) {
	if u.tx != nil {
		return nil, ErrTransactionActive
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}

	u.tx = tx
	return &Transaction{uow: u, tx: tx}, nil
}

func (t *Transaction) Commit() error {
	if t.done {
		return ErrTransactionDone
	}
	t.finish()

	if err := t.tx.Commit().Error; err != nil {
		t.uow.log.Error("Failed to commit transaction", zap.Error(err))
		t.uow.observe("commit_failed")
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.uow.observe("commit")
	return nil
}

// Rollback undoes everything written in the transaction and drops staged
// changes. It is a no-op once the transaction has finished, so it is safe
// to defer right after BeginTransaction.
func (t *Transaction) Rollback() error {
	if t.done {
		return nil
	}
	t.finish()
	t.uow.pending = nil

	if err := t.tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.uow.log.Warn("Failed to roll back transaction", zap.Error(err))
		t.uow.observe("rollback")
		return fmt.Errorf("rollback transaction: %w", err)
	}

	t.uow.observe("rollback")
	return nil
}

func (t *Transaction) finish() {
	t.done = true
	t.uow.tx = nil
}

func (u *UnitOfWork) observe(outcome string) {
	if u.observer != nil {
		u.observer.ObserveTransaction(outcome)
	}
}

// TextEquals returns a condition comparing column with one bound argument
// under the configured collation. Without a collation the comparison is
// case-insensitive through LOWER on both sides.
func (u *UnitOfWork) TextEquals(column string) string {
	return textEquals(u.db.Dialector.Name(), u.collation, column)
}

func textEquals(dialect, collation, column string) string {
	switch {
	case collation == "":
		return fmt.Sprintf("LOWER(%s) = LOWER(?)", column)
	case dialect == "postgres":
		return fmt.Sprintf(`%s COLLATE "%s" = ?`, column, collation)
	default:
		return fmt.Sprintf("%s COLLATE %s = ?", column, collation)
	}
}

// Close rolls back an open transaction and drops anything still staged.
func (u *UnitOfWork) Close() {
	if u.tx != nil {
		if err := (&Transaction{uow: u, tx: u.tx}).Rollback(); err != nil {
			u.log.Warn("Rollback on close failed", zap.Error(err))
		}
	}
	u.pending = nil
}

// UnitOfWorkFactory hands out a fresh unit of work per operation. It holds
// the shared connection pool; units of work are never shared.
type UnitOfWorkFactory struct {
	db        *gorm.DB
	collation string
	observer  TransactionObserver
	log       *zap.Logger
}

type FactoryOption func(*UnitOfWorkFactory)

func WithCollation(collation string) FactoryOption {
	return func(f *UnitOfWorkFactory) {
		f.collation = collation
	}
}

func WithTransactionObserver(observer TransactionObserver) FactoryOption {
	return func(f *UnitOfWorkFactory) {
		f.observer = observer
	}
}

func NewUnitOfWorkFactory(db *gorm.DB, log *zap.Logger, opts ...FactoryOption) *UnitOfWorkFactory {
	f := &UnitOfWorkFactory{
		db:  db,
		log: log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *UnitOfWorkFactory) New() *UnitOfWork {
	return newUnitOfWork(f.db, f.collation, f.observer, f.log)
}
