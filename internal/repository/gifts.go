package repository

import (
	"context"
	"database/sql"
	"time"

	"cradle/internal/database"
	apperrors "cradle/internal/errors"
	"cradle/internal/models"
)

type GiftRepository struct {
	db *database.DB
}

func NewGiftRepository(db *database.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

const giftColumns = `id, name, description, category, status, selected_by,
	selection_date, total_quantity, selected_quantity, image_url, priority, created_at`

func scanGift(row interface {
	Scan(dest ...interface{}) error
}) (*models.Gift, error) {
	var gift models.Gift
	var description, selectedBy, imageURL sql.NullString
	var selectionDate sql.NullTime
	var totalQuantity, priority sql.NullInt64

	err := row.Scan(
		&gift.ID,
		&gift.Name,
		&description,
		&gift.Category,
		&gift.Status,
		&selectedBy,
		&selectionDate,
		&totalQuantity,
		&gift.SelectedQuantity,
		&imageURL,
		&priority,
		&gift.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		gift.Description = &description.String
	}
	if selectedBy.Valid {
		gift.SelectedBy = &selectedBy.String
	}
	if selectionDate.Valid {
		gift.SelectionDate = &selectionDate.Time
	}
	if totalQuantity.Valid {
		v := int(totalQuantity.Int64)
		gift.TotalQuantity = &v
	}
	if imageURL.Valid {
		gift.ImageURL = &imageURL.String
	}
	if priority.Valid {
		v := int(priority.Int64)
		gift.Priority = &v
	}

	return &gift, nil
}

func (r *GiftRepository) List(ctx context.Context) ([]models.Gift, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gifts
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gifts []models.Gift
	for rows.Next() {
		gift, err := scanGift(rows)
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, *gift)
	}

	return gifts, rows.Err()
}

func (r *GiftRepository) GetByID(ctx context.Context, id string) (*models.Gift, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gifts
		WHERE id = $1`

	gift, err := scanGift(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return gift, nil
}

func (r *GiftRepository) Create(ctx context.Context, gift *models.Gift) (*models.Gift, error) {
	query := `
		INSERT INTO gifts (name, description, category, status, selected_by,
			selection_date, total_quantity, selected_quantity, image_url, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + giftColumns

	return scanGift(r.db.QueryRowContext(ctx, query,
		gift.Name,
		gift.Description,
		gift.Category,
		gift.Status,
		gift.SelectedBy,
		gift.SelectionDate,
		gift.TotalQuantity,
		gift.SelectedQuantity,
		gift.ImageURL,
		gift.Priority,
	))
}

func (r *GiftRepository) Update(ctx context.Context, gift *models.Gift) (*models.Gift, error) {
	query := `
		UPDATE gifts
		SET name = $1, description = $2, category = $3, status = $4,
			selected_by = $5, selection_date = $6, total_quantity = $7,
			selected_quantity = $8, image_url = $9, priority = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING ` + giftColumns

	updated, err := scanGift(r.db.QueryRowContext(ctx, query,
		gift.Name,
		gift.Description,
		gift.Category,
		gift.Status,
		gift.SelectedBy,
		gift.SelectionDate,
		gift.TotalQuantity,
		gift.SelectedQuantity,
		gift.ImageURL,
		gift.Priority,
		gift.ID,
	))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *GiftRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gifts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Reserve claims a gift (or part of a quantity gift) for a guest. The row is
// locked for the duration of the transaction so two guests racing for the
// last unit cannot both pass the availability check.
func (r *GiftRepository) Reserve(ctx context.Context, id, guestName string, quantity int) (*models.Gift, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT ` + giftColumns + `
		FROM gifts
		WHERE id = $1
		FOR UPDATE`

	gift, err := scanGift(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}

	if gift.Status == models.GiftStatusNotNeeded {
		return nil, apperrors.ErrGiftUnavailable
	}

	now := time.Now()

	if gift.IsQuantity() {
		if gift.Remaining() == 0 {
			return nil, apperrors.ErrGiftUnavailable
		}
		if quantity > gift.Remaining() {
			return nil, apperrors.ErrQuantityExceeded
		}

		// Only the most recent reserver is kept on the row.
		_, err = tx.ExecContext(ctx, `
			UPDATE gifts
			SET selected_quantity = selected_quantity + $1, selected_by = $2,
				selection_date = $3, updated_at = NOW()
			WHERE id = $4`,
			quantity, guestName, now, id)
		if err != nil {
			return nil, err
		}

		gift.SelectedQuantity += quantity
	} else {
		if gift.Status != models.GiftStatusAvailable {
			return nil, apperrors.ErrGiftUnavailable
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE gifts
			SET status = $1, selected_by = $2, selection_date = $3, updated_at = NOW()
			WHERE id = $4`,
			models.GiftStatusSelected, guestName, now, id)
		if err != nil {
			return nil, err
		}

		gift.Status = models.GiftStatusSelected
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	gift.SelectedBy = &guestName
	gift.SelectionDate = &now

	return gift, nil
}

// Revert returns a selected or not_needed gift to available, clearing the
// reservation fields. Reverting an already-available gift is a no-op.
func (r *GiftRepository) Revert(ctx context.Context, id string) (*models.Gift, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT ` + giftColumns + `
		FROM gifts
		WHERE id = $1
		FOR UPDATE`

	gift, err := scanGift(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrGiftNotFound
	}
	if err != nil {
		return nil, err
	}

	if gift.Status == models.GiftStatusAvailable && gift.SelectedQuantity == 0 {
		return gift, tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE gifts
		SET status = $1, selected_by = NULL, selection_date = NULL,
			selected_quantity = 0, updated_at = NOW()
		WHERE id = $2`,
		models.GiftStatusAvailable, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	gift.Status = models.GiftStatusAvailable
	gift.SelectedBy = nil
	gift.SelectionDate = nil
	gift.SelectedQuantity = 0

	return gift, nil
}
