// Package database owns the process-wide relational connection. The handle is
// initialised exactly once on the first real request for it and reused for the
// process lifetime; a missing DSN fails fast instead of being hidden behind a
// lazy proxy.
package database

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

// ErrNotInitialised is returned by Get before Open has succeeded.
var ErrNotInitialised = errors.New("database: not initialised")

var (
	once    sync.Once
	handle  *gorm.DB
	openErr error
)

// Open connects to Postgres, runs schema migration, and caches the handle.
// Subsequent calls return the cached handle regardless of arguments.
func Open(dsn string) (*gorm.DB, error) {
	once.Do(func() {
		if dsn == "" {
			openErr = errors.New("database: dsn is required")
			return
		}
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			openErr = fmt.Errorf("database: open: %w", err)
			return
		}
		if err := db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}, &domain.Contact{}); err != nil {
			openErr = fmt.Errorf("database: migrate: %w", err)
			return
		}
		handle = db
	})
	return handle, openErr
}

// Get returns the cached handle or ErrNotInitialised.
func Get() (*gorm.DB, error) {
	if handle == nil {
		if openErr != nil {
			return nil, openErr
		}
		return nil, ErrNotInitialised
	}
	return handle, nil
}

// Ping verifies connectivity for readiness checks.
func Ping() error {
	db, err := Get()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: sql handle: %w", err)
	}
	return sqlDB.Ping()
}
