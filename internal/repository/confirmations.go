package repository

import (
	"context"
	"fmt"

	"cradle/internal/database"
	"cradle/internal/models"
)

type ConfirmationRepository struct {
	db *database.DB
}

func NewConfirmationRepository(db *database.DB) *ConfirmationRepository {
	return &ConfirmationRepository{db: db}
}

// Create stores one submission batch with its guest names
func (r *ConfirmationRepository) Create(ctx context.Context, names []string) (*models.Confirmation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	confirmation := &models.Confirmation{Names: names}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO confirmations DEFAULT VALUES
		RETURNING id, confirmed_at`,
	).Scan(&confirmation.ID, &confirmation.ConfirmedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create confirmation: %w", err)
	}

	for _, name := range names {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO confirmation_guests (confirmation_id, guest_name)
			VALUES ($1, $2)`,
			confirmation.ID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to add guest name: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return confirmation, nil
}

// ListAttendees flattens all confirmations to one row per guest name,
// newest batch first, names ordered within equal timestamps
func (r *ConfirmationRepository) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.guest_name, c.confirmed_at
		FROM confirmation_guests g
		JOIN confirmations c ON c.id = g.confirmation_id
		ORDER BY c.confirmed_at DESC, g.guest_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var attendee models.Attendee
		if err := rows.Scan(&attendee.Name, &attendee.ConfirmedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}

	return attendees, rows.Err()
}
