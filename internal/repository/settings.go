package repository

import (
	"context"
	"database/sql"

	"cradle/internal/database"
	"cradle/internal/models"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `title, baby_name, event_date, event_time, location,
	address, welcome_message, header_image_url`

func scanSettings(row *sql.Row) (*models.EventSettings, error) {
	var settings models.EventSettings
	var babyName, headerImageURL sql.NullString

	err := row.Scan(
		&settings.Title,
		&babyName,
		&settings.Date,
		&settings.Time,
		&settings.Location,
		&settings.Address,
		&settings.WelcomeMessage,
		&headerImageURL,
	)
	if err != nil {
		return nil, err
	}

	if babyName.Valid {
		settings.BabyName = &babyName.String
	}
	if headerImageURL.Valid {
		settings.HeaderImageURL = &headerImageURL.String
	}

	return &settings, nil
}

// Get returns the singleton, or nil when it has never been written
func (r *SettingsRepository) Get(ctx context.Context) (*models.EventSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM event_settings WHERE id = 1`

	settings, err := scanSettings(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Init seeds the singleton with defaults. First write wins: a concurrent
// initializer loses silently and the stored row stays untouched.
func (r *SettingsRepository) Init(ctx context.Context, defaults *models.EventSettings) error {
	query := `
		INSERT INTO event_settings (id, title, baby_name, event_date, event_time,
			location, address, welcome_message, header_image_url)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		defaults.Title,
		defaults.BabyName,
		defaults.Date,
		defaults.Time,
		defaults.Location,
		defaults.Address,
		defaults.WelcomeMessage,
		defaults.HeaderImageURL,
	)
	return err
}

func (r *SettingsRepository) Update(ctx context.Context, settings *models.EventSettings) (*models.EventSettings, error) {
	query := `
		UPDATE event_settings
		SET title = $1, baby_name = $2, event_date = $3, event_time = $4,
			location = $5, address = $6, welcome_message = $7,
			header_image_url = $8, updated_at = NOW()
		WHERE id = 1
		RETURNING ` + settingsColumns

	return scanSettings(r.db.QueryRowContext(ctx, query,
		settings.Title,
		settings.BabyName,
		settings.Date,
		settings.Time,
		settings.Location,
		settings.Address,
		settings.WelcomeMessage,
		settings.HeaderImageURL,
	))
}
