package service

import (
	"cradle/internal/cache"
	"cradle/internal/external"
	"cradle/internal/messaging"
	"cradle/internal/repository"
)

type Services struct {
	Gifts         *GiftService
	Settings      *SettingsService
	Confirmations *ConfirmationService
	Export        *ExportService
}

func NewServices(repos *repository.Repositories, cacheClient *cache.Client, natsClient *messaging.NATSClient, blobClient *external.BlobClient) *Services {
	giftService := NewGiftService(repos.Gifts, cacheClient, natsClient, blobClient)
	settingsService := NewSettingsService(repos.Settings, cacheClient, natsClient)
	confirmationService := NewConfirmationService(repos.Confirmations, cacheClient, natsClient)
	exportService := NewExportService(repos.Gifts, repos.Confirmations)

	return &Services{
		Gifts:         giftService,
		Settings:      settingsService,
		Confirmations: confirmationService,
		Export:        exportService,
	}
}
