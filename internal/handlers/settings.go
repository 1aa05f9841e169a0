package handlers

import (
	"log/slog"
	"net/http"

	"cradle/internal/models"

	"github.com/gin-gonic/gin"
)

// GetEvent - GET /api/event
// Event settings singleton; seeded with defaults on first read
func (h *Handlers) GetEvent(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		slog.Error("Failed to get event settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateEvent - PATCH /api/admin/event
// Merge-write: only provided fields change
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req models.UpdateEventSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.services.Settings.Update(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to update event settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// CalendarLink - GET /api/event/calendar-link
func (h *Handlers) CalendarLink(c *gin.Context) {
	link, err := h.services.Settings.CalendarLink(c.Request.Context())
	if err != nil {
		slog.Error("Failed to build calendar link", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar link"})
		return
	}

	c.JSON(http.StatusOK, link)
}
