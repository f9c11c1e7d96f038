// Package repotest opens throwaway SQLite stores for package tests.
package repotest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository"
	"stempede-store/pkg/database"
	"stempede-store/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collation is the SQLite collation the test stores compare identifiers with.
const Collation = "NOCASE"

// Open returns a migrated SQLite database under t.TempDir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(utils.DatabaseConfig{
		Driver:    database.DriverSQLite,
		Name:      filepath.Join(t.TempDir(), "store.db"),
		Collation: Collation,
	}, zap.NewNop(), false)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, repository.AutoMigrate(db.Gorm))
	return db.Gorm
}

// Setup opens a store, seeds the roles and returns a factory over it.
func Setup(t testing.TB, opts ...repository.FactoryOption) (*repository.UnitOfWorkFactory, *gorm.DB) {
	t.Helper()

	db := Open(t)
	opts = append([]repository.FactoryOption{repository.WithCollation(Collation)}, opts...)
	factory := repository.NewUnitOfWorkFactory(db, zap.NewNop(), opts...)
	require.NoError(t, repository.SeedRoles(context.Background(), factory.New()))

	return factory, db
}

// CreateUser stores an active or banned user holding role.
func CreateUser(t testing.TB, factory *repository.UnitOfWorkFactory, username, email, password string, role entity.RoleName, active bool) *entity.User {
	t.Helper()
	ctx := context.Background()
	uow := factory.New()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{
		FullName: username,
		Username: username,
		Email:    email,
		Password: hash,
		Status:   active,
	}
	uow.User.Add(user)
	_, err = uow.Complete(ctx)
	require.NoError(t, err)

	stored, err := uow.Role.Get(ctx, repository.Where("role_name = ?", string(role)))
	require.NoError(t, err)
	require.NotNil(t, stored)

	uow.UserRole.Add(&entity.UserRole{UserID: user.ID, RoleID: stored.ID})
	_, err = uow.Complete(ctx)
	require.NoError(t, err)

	return user
}

// CreateSubcategory stores a subcategory named name.
func CreateSubcategory(t testing.TB, factory *repository.UnitOfWorkFactory, name string) *entity.Subcategory {
	t.Helper()
	uow := factory.New()

	sub := &entity.Subcategory{SubcategoryName: name}
	uow.Subcategory.Add(sub)
	_, err := uow.Complete(context.Background())
	require.NoError(t, err)

	return sub
}

// CreateProduct stores a product in subcategoryID.
func CreateProduct(t testing.TB, factory *repository.UnitOfWorkFactory, name string, subcategoryID int) *entity.Product {
	t.Helper()
	uow := factory.New()

	product := &entity.Product{
		ProductName:   name,
		Description:   name + " description",
		Price:         decimal.RequireFromString("19.90"),
		StockQuantity: 5,
		SubcategoryID: subcategoryID,
	}
	uow.Product.Add(product)
	_, err := uow.Complete(context.Background())
	require.NoError(t, err)

	return product
}

// CreateOrder stores an order for userID with one detail line per product.
func CreateOrder(t testing.TB, factory *repository.UnitOfWorkFactory, userID int, status entity.DeliveryStatus, products ...*entity.Product) *entity.Order {
	t.Helper()
	ctx := context.Background()
	uow := factory.New()

	order := &entity.Order{
		UserID:         userID,
		OrderDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:    decimal.Zero,
		DeliveryStatus: status,
	}
	for _, p := range products {
		order.TotalAmount = order.TotalAmount.Add(p.Price)
	}
	uow.Order.Add(order)
	_, err := uow.Complete(ctx)
	require.NoError(t, err)

	for _, p := range products {
		uow.OrderDetail.Add(&entity.OrderDetail{
			OrderID:            order.ID,
			ProductID:          p.ID,
			Quantity:           1,
			Price:              p.Price,
			ProductDescription: p.Description,
		})
	}
	_, err = uow.Complete(ctx)
	require.NoError(t, err)

	return order
}

// CreateSupportRequest stores a support request raised by userID on orderID.
func CreateSupportRequest(t testing.TB, factory *repository.UnitOfWorkFactory, userID, orderID int, description string) *entity.SupportRequest {
	t.Helper()
	uow := factory.New()

	request := &entity.SupportRequest{
		SupportDescription: description,
		OrderID:            orderID,
		UserID:             userID,
	}
	uow.SupportRequest.Add(request)
	_, err := uow.Complete(context.Background())
	require.NoError(t, err)

	return request
}
