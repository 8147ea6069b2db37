package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wesmun/dbtools/internal/config"
)

// Connect opens the PostgreSQL database named by cfg and verifies it is reachable.
func Connect(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	dsn := WithRootCert(NormalizeDSN(cfg.DatabaseURL), cfg.CACertPath)
	return Open(ctx, postgres.Open(dsn), cfg)
}

// Open bootstraps a database through dialector and pings it within cfg.ConnectTimeout.
// The pool is capped at one connection; the tools never issue concurrent statements.
func Open(ctx context.Context, dialector gorm.Dialector, cfg config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Debug {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               gormlogger.Default.LogMode(logLevel),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Ping(ctx, db, cfg.ConnectTimeout); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Ping checks connectivity. A zero timeout waits as long as ctx allows.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("access sql handle: %w", err)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("access sql handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// ServerVersion reports the server's version() string.
func ServerVersion(ctx context.Context, db *gorm.DB) (string, error) {
	var version string
	if err := db.WithContext(ctx).Raw("SELECT version()").Scan(&version).Error; err != nil {
		return "", fmt.Errorf("query server version: %w", err)
	}
	return version, nil
}
