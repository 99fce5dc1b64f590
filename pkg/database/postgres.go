package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/idu-staffing-board/pkg/config"
)

// Schema mirrors the spreadsheet's StaffingDB sheet: one row per non-empty slot.
const Schema = `
CREATE TABLE IF NOT EXISTS staffing_slots (
    slot_key    TEXT PRIMARY KEY,
    day         TEXT NOT NULL,
    block       TEXT NOT NULL,
    year_group  TEXT NOT NULL,
    class_name  TEXT NOT NULL,
    teachers    TEXT NOT NULL DEFAULT '',
    locations   JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// NewPostgres returns a configured PostgreSQL client with the slot table in place.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure staffing_slots schema: %w", err)
	}

	return db, nil
}
