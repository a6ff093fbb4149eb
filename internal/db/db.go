package db

import (
	"database/sql"
	"fmt"
	"net/url"

	"laundry-be/internal/config"
	"laundry-be/internal/logger"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func buildDSN(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverPostgres {
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}

	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	return fmt.Sprintf("file:%s?%s", cfg.DBPath, q.Encode())
}

// NewDatabase opens and pings the configured database.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	driver := cfg.DBDriver
	if driver == "" {
		driver = config.DriverSQLite
	}
	return newDatabaseWithDriver(cfg, driver)
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if driverName == config.DriverSQLite {
		// One connection serializes writers and keeps PRAGMAs on every query.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

// InitDB is NewDatabase for process startup: it exits on failure.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database unavailable", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	logger.L().Info("Database connection established", zap.String("driver", cfg.DBDriver))
	return db
}
