package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cradle/internal/cache"
	apperrors "cradle/internal/errors"
	"cradle/internal/external"
	"cradle/internal/messaging"
	"cradle/internal/metrics"
	"cradle/internal/models"
	"cradle/internal/repository"
)

type GiftService struct {
	gifts      repository.GiftStore
	cache      *cache.Client
	nats       *messaging.NATSClient
	blobClient *external.BlobClient
}

func NewGiftService(gifts repository.GiftStore, cacheClient *cache.Client, natsClient *messaging.NATSClient, blobClient *external.BlobClient) *GiftService {
	return &GiftService{
		gifts:      gifts,
		cache:      cacheClient,
		nats:       natsClient,
		blobClient: blobClient,
	}
}

func (s *GiftService) List(ctx context.Context) ([]models.Gift, error) {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	if gifts == nil {
		gifts = []models.Gift{}
	}
	return gifts, nil
}

// Select reserves a gift for a guest. The losing side of a race for the last
// unit gets ErrGiftUnavailable or ErrQuantityExceeded, never a double
// reservation.
func (s *GiftService) Select(ctx context.Context, req *models.SelectGiftRequest) (*models.Gift, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	gift, err := s.gifts.Reserve(ctx, req.GiftID, req.GuestName, quantity)
	if err != nil {
		if err == apperrors.ErrGiftUnavailable || err == apperrors.ErrQuantityExceeded {
			metrics.ReservationConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.GiftsReservedTotal.Inc()

	s.publish(models.EventGiftSelected, models.GiftSelectedEvent{
		GiftID:    gift.ID,
		GiftName:  gift.Name,
		GuestName: req.GuestName,
		Quantity:  quantity,
		Timestamp: time.Now(),
	})
	s.invalidate(ctx)

	return gift, nil
}

// Revert returns a gift to available, clearing the reservation fields.
// Already-available gifts pass through unchanged.
func (s *GiftService) Revert(ctx context.Context, id string) (*models.Gift, error) {
	gift, err := s.gifts.Revert(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(models.EventGiftReverted, models.GiftRevertedEvent{
		GiftID:    gift.ID,
		Timestamp: time.Now(),
	})
	s.invalidate(ctx)

	return gift, nil
}

func (s *GiftService) Create(ctx context.Context, req *models.CreateGiftRequest) (*models.Gift, error) {
	gift := &models.Gift{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Status:        req.Status,
		SelectedBy:    req.SelectedBy,
		TotalQuantity: req.TotalQuantity,
		ImageURL:      req.ImageURL,
		Priority:      req.Priority,
	}

	if gift.Status == "" {
		gift.Status = models.GiftStatusAvailable
	}
	if gift.Status == models.GiftStatusSelected {
		now := time.Now()
		gift.SelectionDate = &now
		if gift.SelectedBy == nil {
			admin := models.AdminSelectedBy
			gift.SelectedBy = &admin
		}
	}

	created, err := s.gifts.Create(ctx, gift)
	if err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}

	s.publish(models.EventGiftCreated, models.GiftChangedEvent{
		GiftID:    created.ID,
		GiftName:  created.Name,
		Timestamp: time.Now(),
	})
	s.invalidate(ctx)

	return created, nil
}

// Update patches an item. Moving status away from selected clears the
// reservation fields; moving to selected without a selector attributes the
// reservation to the admin.
func (s *GiftService) Update(ctx context.Context, id string, req *models.UpdateGiftRequest) (*models.Gift, error) {
	gift, err := s.gifts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}
	if gift == nil {
		return nil, apperrors.ErrGiftNotFound
	}

	previousStatus := gift.Status

	if req.Name != nil {
		gift.Name = *req.Name
	}
	if req.Description != nil {
		gift.Description = req.Description
	}
	if req.Category != nil {
		gift.Category = *req.Category
	}
	if req.Status != nil {
		gift.Status = *req.Status
	}
	if req.SelectedBy != nil {
		gift.SelectedBy = req.SelectedBy
	}
	if req.TotalQuantity != nil {
		gift.TotalQuantity = req.TotalQuantity
	}
	if req.ImageURL != nil {
		gift.ImageURL = req.ImageURL
	}
	if req.Priority != nil {
		gift.Priority = req.Priority
	}

	if gift.Status != previousStatus {
		if previousStatus == models.GiftStatusSelected && gift.Status != models.GiftStatusSelected {
			gift.SelectedBy = nil
			gift.SelectionDate = nil
		}
		if gift.Status == models.GiftStatusSelected {
			now := time.Now()
			gift.SelectionDate = &now
			if gift.SelectedBy == nil {
				admin := models.AdminSelectedBy
				gift.SelectedBy = &admin
			}
		}
	}

	updated, err := s.gifts.Update(ctx, gift)
	if err != nil {
		return nil, err
	}

	s.publish(models.EventGiftUpdated, models.GiftChangedEvent{
		GiftID:    updated.ID,
		GiftName:  updated.Name,
		Timestamp: time.Now(),
	})
	s.invalidate(ctx)

	return updated, nil
}

func (s *GiftService) Delete(ctx context.Context, id string) (bool, error) {
	gift, err := s.gifts.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get gift: %w", err)
	}
	if gift == nil {
		return false, nil
	}

	deleted, err := s.gifts.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete gift: %w", err)
	}
	if !deleted {
		return false, nil
	}

	// Best-effort cleanup of a blob-hosted image.
	if s.blobClient != nil && gift.ImageURL != nil {
		if err := s.blobClient.Delete(ctx, *gift.ImageURL); err != nil {
			slog.Error("Failed to delete gift image", "gift_id", id, "error", err)
		}
	}

	s.publish(models.EventGiftDeleted, models.GiftChangedEvent{
		GiftID:    gift.ID,
		GiftName:  gift.Name,
		Timestamp: time.Now(),
	})
	s.invalidate(ctx)

	return true, nil
}

// Suggest creates a guest-suggested item already reserved by its suggester
func (s *GiftService) Suggest(ctx context.Context, req *models.SuggestGiftRequest) (*models.Gift, error) {
	now := time.Now()
	suggester := req.SuggesterName

	gift := &models.Gift{
		Name:          req.Name,
		Description:   req.Description,
		Category:      models.DefaultSuggestionCategory,
		Status:        models.GiftStatusSelected,
		SelectedBy:    &suggester,
		SelectionDate: &now,
		ImageURL:      req.ImageURL,
	}

	created, err := s.gifts.Create(ctx, gift)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}

	s.publish(models.EventGiftSuggested, models.GiftSuggestedEvent{
		GiftID:        created.ID,
		GiftName:      created.Name,
		SuggesterName: req.SuggesterName,
		Timestamp:     time.Now(),
	})
	s.invalidate(ctx)

	return created, nil
}

func (s *GiftService) publish(subject string, event interface{}) {
	if s.nats == nil {
		return
	}
	if err := s.nats.Publish(subject, event); err != nil {
		slog.Error("Failed to publish event", "subject", subject, "error", err)
	}
}

func (s *GiftService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, cache.PageHome, cache.PageAdmin)
}
