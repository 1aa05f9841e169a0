package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cradle/internal/cache"
	apperrors "cradle/internal/errors"
	"cradle/internal/messaging"
	"cradle/internal/metrics"
	"cradle/internal/models"
	"cradle/internal/repository"
)

type ConfirmationService struct {
	confirmations repository.ConfirmationStore
	cache         *cache.Client
	nats          *messaging.NATSClient
}

func NewConfirmationService(confirmations repository.ConfirmationStore, cacheClient *cache.Client, natsClient *messaging.NATSClient) *ConfirmationService {
	return &ConfirmationService{
		confirmations: confirmations,
		cache:         cacheClient,
		nats:          natsClient,
	}
}

// Create stores one attendance submission. Names are not deduplicated against
// earlier submissions; a guest confirming twice appears twice.
func (s *ConfirmationService) Create(ctx context.Context, req *models.CreateConfirmationRequest) (*models.Confirmation, error) {
	var names []string
	for _, name := range req.Names {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, apperrors.ErrConfirmationEmpty
	}

	confirmation, err := s.confirmations.Create(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to create confirmation: %w", err)
	}

	metrics.ConfirmationsTotal.Inc()

	if s.nats != nil {
		event := models.ConfirmationCreatedEvent{
			ConfirmationID: confirmation.ID,
			Names:          confirmation.Names,
			Timestamp:      time.Now(),
		}
		if err := s.nats.Publish(models.EventConfirmationCreated, event); err != nil {
			slog.Error("Failed to publish event", "subject", models.EventConfirmationCreated, "error", err)
		}
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.PageAdmin)
	}

	return confirmation, nil
}

// ListAttendees returns the flattened one-name-per-row attendance list
func (s *ConfirmationService) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	attendees, err := s.confirmations.ListAttendees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []models.Attendee{}
	}
	return attendees, nil
}
