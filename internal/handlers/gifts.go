package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"cradle/internal/cache"
	apperrors "cradle/internal/errors"
	"cradle/internal/models"

	"github.com/gin-gonic/gin"
)

// ListGifts - GET /api/gifts
// Full catalog, newest first. Served from the page cache when fresh.
func (h *Handlers) ListGifts(c *gin.Context) {
	if h.cacheClient != nil {
		// Raw JSON straight from the cache, skipping an unmarshal/marshal pass
		rawJSON, err := h.cacheClient.GetPageRaw(c.Request.Context(), cache.PageHome)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	gifts, err := h.services.Gifts.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list gifts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list gifts"})
		return
	}

	if h.cacheClient != nil {
		h.cacheClient.SetPage(c.Request.Context(), cache.PageHome, gifts)
	}

	c.JSON(http.StatusOK, gifts)
}

// SelectGift - PATCH /api/gifts/select
// Reserve a gift (or part of a quantity gift) under a guest name
func (h *Handlers) SelectGift(c *gin.Context) {
	var req models.SelectGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, err := h.services.Gifts.Select(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrGiftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrGiftUnavailable),
			errors.Is(err, apperrors.ErrQuantityExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.Error("Failed to select gift", "gift_id", req.GiftID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select gift"})
		}
		return
	}

	c.JSON(http.StatusOK, gift)
}

// SuggestGift - POST /api/suggestions
// Guest-suggested item, auto-reserved by its suggester
func (h *Handlers) SuggestGift(c *gin.Context) {
	var req models.SuggestGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, err := h.services.Gifts.Suggest(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create suggestion", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create suggestion"})
		return
	}

	c.JSON(http.StatusCreated, gift)
}

// CreateGift - POST /api/admin/gifts
func (h *Handlers) CreateGift(c *gin.Context) {
	var req models.CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, err := h.services.Gifts.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create gift", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift"})
		return
	}

	c.JSON(http.StatusCreated, gift)
}

// UpdateGift - PATCH /api/admin/gifts/:id
func (h *Handlers) UpdateGift(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gift, err := h.services.Gifts.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrGiftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Failed to update gift", "gift_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gift"})
		return
	}

	c.JSON(http.StatusOK, gift)
}

// DeleteGift - DELETE /api/admin/gifts/:id
func (h *Handlers) DeleteGift(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.services.Gifts.Delete(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to delete gift", "gift_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gift"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "gift not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RevertGift - PATCH /api/admin/gifts/:id/revert
// Return a selected or not_needed gift to available
func (h *Handlers) RevertGift(c *gin.Context) {
	id := c.Param("id")

	gift, err := h.services.Gifts.Revert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrGiftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Failed to revert gift", "gift_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revert gift"})
		return
	}

	c.JSON(http.StatusOK, gift)
}
