package repository

import (
	"cradle/internal/database"
)

type Repositories struct {
	Gifts         GiftStore
	Settings      SettingsStore
	Confirmations ConfirmationStore
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Gifts:         NewGiftRepository(db),
		Settings:      NewSettingsRepository(db),
		Confirmations: NewConfirmationRepository(db),
	}
}
