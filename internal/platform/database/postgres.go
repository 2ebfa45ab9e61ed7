package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

//go:embed schema/*.sql
var schemaFS embed.FS

// NewPostgresDB retries the initial ping so the service can start before the
// database container is ready.
func NewPostgresDB(ctx context.Context, cfg Config, log *slog.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error
	maxRetries := 10

	for i := 1; i <= maxRetries; i++ {
		log.Info("connecting to database", "attempt", i, "max_attempts", maxRetries)
		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.PingContext(ctx)
		}

		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			log.Info("database connected")
			return db, nil
		}

		if db != nil {
			_ = db.Close()
		}

		log.Warn("database not ready yet, retrying", "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

// Migrate applies one of the embedded schema files (bookings.sql, rooms.sql).
// Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB, name string) error {
	ddl, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}

	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema %s: %w", name, err)
	}

	return nil
}
