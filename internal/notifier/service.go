package notifier

import (
	"context"
	"log/slog"

	"cradle/internal/config"
	"cradle/internal/external"
	"cradle/internal/messaging"
	"cradle/internal/models"
)

// NotifierService consumes registry events and emails the event host
type NotifierService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
}

func NewNotifierService(cfg *config.Config) (*NotifierService, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	mailer := external.NewMailerClient(cfg.Mailer)
	handlers := NewHandlers(mailer)

	return &NotifierService{
		nats:     natsClient,
		handlers: handlers,
	}, nil
}

func (ns *NotifierService) Start() error {
	slog.Info("Starting notification consumers...")

	_, err := ns.nats.SubscribeQueue(models.EventGiftSelected, "notifier", ns.handlers.HandleGiftSelected)
	if err != nil {
		return err
	}

	_, err = ns.nats.SubscribeQueue(models.EventGiftSuggested, "notifier", ns.handlers.HandleGiftSuggested)
	if err != nil {
		return err
	}

	_, err = ns.nats.SubscribeQueue(models.EventConfirmationCreated, "notifier", ns.handlers.HandleConfirmationCreated)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (ns *NotifierService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down notifier service...")

	if ns.nats != nil {
		if err := ns.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}

	return nil
}
