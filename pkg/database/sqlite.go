package database

import (
	"fmt"

	"stempede-store/pkg/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openSQLite opens the file named by config.Name. A single connection keeps
// transactions and plain queries on the same handle.
func openSQLite(config utils.DatabaseConfig, gormConfig *gorm.Config) (*DB, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	orm, err := gorm.Open(sqlite.Open(config.Name), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open gorm sqlite %s: %w", config.Name, err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &DB{Gorm: orm}, nil
}
