// Package database owns the connection pool to the relational store and the
// schema migrations applied to it.
package database

import (
	"context"
	"errors"
	"fmt"

	"finmanager/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultMigrationsSource is where migration files live relative to the working directory.
const DefaultMigrationsSource = "file://migrations"

// Manager handles database operations. It is created once at process start
// and closed on shutdown.
type Manager struct {
	db     *gorm.DB
	config *Config
	log    *logger.Logger
}

// NewManager opens the connection pool
func NewManager(config *Config, log *logger.Logger) (*Manager, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	return &Manager{db: db, config: config, log: log}, nil
}

// Ping verifies that the store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		m.log.Error("Database connection error", "error", err.Error())
		return fmt.Errorf("failed to ping database: %w", err)
	}
	m.log.Info("Database connected successfully", "host", m.config.Host, "database", m.config.DBName)
	return nil
}

// RunMigrations applies pending SQL migrations from source (DefaultMigrationsSource when empty).
func (m *Manager) RunMigrations(source string) error {
	if source == "" {
		source = DefaultMigrationsSource
	}
	m.log.Info("Running database migrations", "source", source)

	mig, err := migrate.New(source, m.config.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			m.log.Warn("migrate source close error", "error", srcErr.Error())
		}
		if dbErr != nil {
			m.log.Warn("migrate database close error", "error", dbErr.Error())
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	m.log.Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases every pooled connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.Close()
}
