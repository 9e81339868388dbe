package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"provider-directory/config"
	"provider-directory/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database selected by cfg.Driver.
func NewConnection(cfg config.DBConfig, env string) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSqliteConnection(cfg.Path, env)
	case "", "postgres":
		return NewPostgresConnection(cfg, env)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func NewPostgresConnection(cfg config.DBConfig, env string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger(env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// NewSqliteConnection opens a file backed database, or an in-memory one
// when path starts with "file:" and carries mode=memory.
func NewSqliteConnection(path string, env string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && !isMemoryDSN(path) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger(env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logrus.Infof("Successfully opened SQLite database at %s", path)

	return db, nil
}

// Migrate creates or updates the directory tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Provider{},
		&entity.Branch{},
		&entity.Specialty{},
		&entity.Insurance{},
		&entity.Procedure{},
		&entity.AuditLog{},
	)
}

func gormLogger(env string) logger.Interface {
	if env == "production" {
		return logger.Default.LogMode(logger.Warn)
	}
	if env == "test" {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.Default.LogMode(logger.Info)
}

func isMemoryDSN(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file:")
}
