package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"cradle/internal/cache"
	apperrors "cradle/internal/errors"
	"cradle/internal/messaging"
	"cradle/internal/models"
	"cradle/internal/repository"
)

type SettingsService struct {
	settings repository.SettingsStore
	cache    *cache.Client
	nats     *messaging.NATSClient
}

func NewSettingsService(settings repository.SettingsStore, cacheClient *cache.Client, natsClient *messaging.NATSClient) *SettingsService {
	return &SettingsService{
		settings: settings,
		cache:    cacheClient,
		nats:     natsClient,
	}
}

// Get returns the settings singleton. An empty store is seeded with defaults
// first (first write wins), so repeated reads converge to one stored record.
func (s *SettingsService) Get(ctx context.Context) (*models.EventSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get event settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	if err := s.settings.Init(ctx, models.DefaultEventSettings()); err != nil {
		return nil, fmt.Errorf("failed to initialize event settings: %w", err)
	}

	settings, err = s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get event settings: %w", err)
	}
	if settings == nil {
		return nil, apperrors.ErrSettingsNotFound
	}

	return settings, nil
}

// Update merge-writes the provided fields. Empty babyName and headerImageUrl
// normalize to NULL rather than being kept.
func (s *SettingsService) Update(ctx context.Context, req *models.UpdateEventSettingsRequest) (*models.EventSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		settings.Title = *req.Title
	}
	if req.BabyName != nil {
		if *req.BabyName == "" {
			settings.BabyName = nil
		} else {
			settings.BabyName = req.BabyName
		}
	}
	if req.Date != nil {
		settings.Date = *req.Date
	}
	if req.Time != nil {
		settings.Time = *req.Time
	}
	if req.Location != nil {
		settings.Location = *req.Location
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.WelcomeMessage != nil {
		settings.WelcomeMessage = *req.WelcomeMessage
	}
	if req.HeaderImageURL != nil {
		if *req.HeaderImageURL == "" {
			settings.HeaderImageURL = nil
		} else {
			settings.HeaderImageURL = req.HeaderImageURL
		}
	}

	updated, err := s.settings.Update(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to update event settings: %w", err)
	}

	if s.nats != nil {
		if err := s.nats.Publish(models.EventSettingsUpdated, models.SettingsUpdatedEvent{Timestamp: time.Now()}); err != nil {
			slog.Error("Failed to publish event", "subject", models.EventSettingsUpdated, "error", err)
		}
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.PageHome, cache.PageAdmin)
	}

	return updated, nil
}

// CalendarLink builds a templated Google Calendar URL from the stored event
// details. The event is assumed to run two hours.
func (s *SettingsService) CalendarLink(ctx context.Context) (*models.CalendarLinkResponse, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02 15:04", settings.Date+" "+settings.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event date: %w", err)
	}
	end := start.Add(2 * time.Hour)

	const stamp = "20060102T150405"
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", settings.Title)
	params.Set("dates", start.Format(stamp)+"/"+end.Format(stamp))
	params.Set("details", settings.WelcomeMessage)
	params.Set("location", settings.Location+", "+settings.Address)

	return &models.CalendarLinkResponse{
		URL: "https://www.google.com/calendar/render?" + params.Encode(),
	}, nil
}
