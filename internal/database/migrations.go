package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createGiftsTable,
		createEventSettingsTable,
		createConfirmationsTable,
		createConfirmationGuestsTable,
		createGiftsCreatedAtIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createGiftsTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS gifts (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(500) NOT NULL,
    description TEXT,
    category VARCHAR(100) NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'available',
    selected_by VARCHAR(255),
    selection_date TIMESTAMP,
    total_quantity INTEGER,
    selected_quantity INTEGER NOT NULL DEFAULT 0,
    image_url TEXT,
    priority SMALLINT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('available', 'selected', 'not_needed')),
    CHECK (total_quantity IS NULL OR total_quantity > 0),
    CHECK (selected_quantity >= 0),
    CHECK (total_quantity IS NULL OR selected_quantity <= total_quantity)
);`

const createEventSettingsTable = `
CREATE TABLE IF NOT EXISTS event_settings (
    id SMALLINT PRIMARY KEY DEFAULT 1,
    title VARCHAR(255) NOT NULL,
    baby_name VARCHAR(255),
    event_date VARCHAR(10) NOT NULL,
    event_time VARCHAR(5) NOT NULL,
    location VARCHAR(255) NOT NULL DEFAULT '',
    address VARCHAR(500) NOT NULL DEFAULT '',
    welcome_message TEXT NOT NULL DEFAULT '',
    header_image_url TEXT,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (id = 1)
);`

const createConfirmationsTable = `
CREATE TABLE IF NOT EXISTS confirmations (
    id SERIAL PRIMARY KEY,
    confirmed_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createConfirmationGuestsTable = `
CREATE TABLE IF NOT EXISTS confirmation_guests (
    id SERIAL PRIMARY KEY,
    confirmation_id INTEGER NOT NULL REFERENCES confirmations(id) ON DELETE CASCADE,
    guest_name VARCHAR(255) NOT NULL
);`

const createGiftsCreatedAtIndex = `
CREATE INDEX IF NOT EXISTS gifts_created_at_idx
ON gifts (created_at DESC);`
