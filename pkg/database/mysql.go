package database

import (
	"fmt"
	"net"
	"time"

	"stempede-store/pkg/utils"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mysqlDSN(config utils.DatabaseConfig) string {
	port := config.Port
	if port == "" {
		port = "3306"
	}

	cfg := mysql.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.Host, port)
	cfg.DBName = config.Name
	cfg.ParseTime = true
	cfg.Timeout = 5 * time.Second
	if config.Collation != "" {
		cfg.Collation = config.Collation
	}
	return cfg.FormatDSN()
}

func openMySQL(config utils.DatabaseConfig, gormConfig *gorm.Config) (*DB, error) {
	orm, err := gorm.Open(gormmysql.Open(mysqlDSN(config)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open gorm mysql: %w", err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("get mysql handle: %w", err)
	}
	if config.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(config.MaxConns))
		sqlDB.SetMaxIdleConns(int(config.MaxConns))
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{Gorm: orm}, nil
}
