package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client wraps the PostgreSQL connection. sqlx owns the underlying pool and
// drives golang-migrate; GORM runs on top of the same connection for the
// storages.
type Client struct {
	DB     *gorm.DB
	SQL    *sqlx.DB
	logger *slog.Logger
}

// NewClient opens the PostgreSQL connection, applies migrations and builds the
// GORM handle over the established pool.
func NewClient(databaseURL string, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		logger.Error("failed to open PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("PostgreSQL connection established",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := applyMigrations(databaseURL, logger); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing GORM over existing pool: %w", err)
	}

	return &Client{DB: gormDB, SQL: db, logger: logger}, nil
}

// applyMigrations runs all pending migrations.
func applyMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New(
		"file://internal/database/migrations",
		databaseURL,
	)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	err = m.Up()
	switch {
	case err == nil:
		logger.Info("migrations applied")
	case err == migrate.ErrNoChange:
		logger.Info("database schema up to date")
	default:
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	start := time.Now()
	if err := c.SQL.Close(); err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
