package database

import (
	"fmt"

	"tasknest-service/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
	"go.uber.org/zap"
)

// InitializeDatabase connects to the configured database and applies
// pending migrations. The caller is expected to exit on error; there is no
// retry.
func InitializeDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	dbConn, err := sqlx.Connect(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", cfg.Driver, err)
	}

	// a single writer avoids "database is locked" under concurrent requests
	if cfg.Driver == "sqlite3" {
		dbConn.SetMaxOpenConns(1)
	}

	if err := migrations.Migrate(dbConn, cfg.MigrationsDir); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("running migrations from %s: %w", cfg.MigrationsDir, err)
	}

	logger.Info("Database initialized successfully",
		zap.String("driver", cfg.Driver),
		zap.String("migrations", cfg.MigrationsDir))
	return dbConn, nil
}
