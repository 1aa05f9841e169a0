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

// CreateConfirmation - POST /api/confirmations
// One submission may carry several attendee names
func (h *Handlers) CreateConfirmation(c *gin.Context) {
	var req models.CreateConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.services.Confirmations.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfirmationEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Failed to create confirmation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create confirmation"})
		return
	}

	c.JSON(http.StatusCreated, models.CreateConfirmationResponse{
		ID:          confirmation.ID,
		Names:       confirmation.Names,
		ConfirmedAt: confirmation.ConfirmedAt,
	})
}

// ListConfirmations - GET /api/admin/confirmations
// Flattened one-name-per-row list for the admin view
func (h *Handlers) ListConfirmations(c *gin.Context) {
	if h.cacheClient != nil {
		rawJSON, err := h.cacheClient.GetPageRaw(c.Request.Context(), cache.PageAdmin)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	attendees, err := h.services.Confirmations.ListAttendees(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list confirmations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list confirmations"})
		return
	}

	if h.cacheClient != nil {
		h.cacheClient.SetPage(c.Request.Context(), cache.PageAdmin, attendees)
	}

	c.JSON(http.StatusOK, attendees)
}
