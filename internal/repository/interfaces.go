package repository

import (
	"context"

	"cradle/internal/models"
)

// GiftStore is the persistence contract for registry items
type GiftStore interface {
	List(ctx context.Context) ([]models.Gift, error)
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	Create(ctx context.Context, gift *models.Gift) (*models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) (*models.Gift, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reserve(ctx context.Context, id, guestName string, quantity int) (*models.Gift, error)
	Revert(ctx context.Context, id string) (*models.Gift, error)
}

// SettingsStore is the persistence contract for the event-settings singleton
type SettingsStore interface {
	Get(ctx context.Context) (*models.EventSettings, error)
	Init(ctx context.Context, defaults *models.EventSettings) error
	Update(ctx context.Context, settings *models.EventSettings) (*models.EventSettings, error)
}

// ConfirmationStore is the persistence contract for attendance confirmations
type ConfirmationStore interface {
	Create(ctx context.Context, names []string) (*models.Confirmation, error)
	ListAttendees(ctx context.Context) ([]models.Attendee, error)
}
