package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dancosta154/leadership-profile/internal/config"
	"github.com/dancosta154/leadership-profile/internal/db/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the configured database and runs migrations.
// PostgreSQL is used when DATABASE_URL is set, otherwise a local
// SQLite file is created under the instance directory.
func Initialize(cfg *config.Configuration) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.Database.URL != "" {
		conn, err = gorm.Open(postgres.Open(cfg.Database.URL), gormConfig)
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); mkErr != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
		}
		conn, err = gorm.Open(sqlite.Open(cfg.Database.SQLitePath), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := runMigrations(conn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return conn, nil
}

func runMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Document{},
	)
}
