package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS captures (
		id              BIGSERIAL PRIMARY KEY,
		image_data      BYTEA NOT NULL,
		timestamp       TIMESTAMPTZ NOT NULL DEFAULT now(),
		plate_number    TEXT,
		confidence      DOUBLE PRECISION,
		engine_output   JSONB
	);`,
	`CREATE INDEX IF NOT EXISTS idx_captures_timestamp ON captures(timestamp DESC);`,
	`CREATE TABLE IF NOT EXISTS watched_plates (
		id              BIGSERIAL PRIMARY KEY,
		plate_number    TEXT NOT NULL,
		normalized      TEXT NOT NULL,
		description     TEXT,
		added_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_watched_plates_normalized ON watched_plates(normalized);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
