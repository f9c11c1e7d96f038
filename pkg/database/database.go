package database

import (
	"context"
	"fmt"
	"time"

	"stempede-store/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DB wrapper struct
type DB struct {
	Gorm *gorm.DB
	pool *pgxpool.Pool
}

// Open connects to the configured driver. GORM translates driver errors so
// unique violations surface as gorm.ErrDuplicatedKey.
func Open(config utils.DatabaseConfig, log *zap.Logger, debug bool) (*DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger:                 NewGormLogger(log, level),
		TranslateError:         true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	switch config.Driver {
	case DriverPostgres, "":
		return openPostgres(config, gormConfig)
	case DriverMySQL:
		return openMySQL(config, gormConfig)
	case DriverSQLite:
		return openSQLite(config, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// Ping checks the underlying connection
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the sql handle and, for postgres, the pgx pool behind it
func (db *DB) Close() {
	if sqlDB, err := db.Gorm.DB(); err == nil {
		sqlDB.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
}
