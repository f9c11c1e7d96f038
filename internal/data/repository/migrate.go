package repository

import (
	"context"
	"fmt"

	"stempede-store/internal/data/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.UserRole{},
		&entity.Subcategory{},
		&entity.Product{},
		&entity.Order{},
		&entity.OrderDetail{},
		&entity.SupportRequest{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedRoles inserts the known roles that are not stored yet.
func SeedRoles(ctx context.Context, uow *UnitOfWork) error {
	for _, name := range entity.AllRoles {
		exists, err := uow.Role.Any(ctx, Where("role_name = ?", string(name)))
		if err != nil {
			return err
		}
		if !exists {
			uow.Role.Add(&entity.Role{RoleName: string(name)})
		}
	}

	if _, err := uow.Complete(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
