package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"cradle/internal/external"
	"cradle/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20 // 5 MiB

// writeCSV sends a CSV download with a date-stamped filename. The UTF-8 BOM
// keeps Excel happy.
func writeCSV(c *gin.Context, dataset, body string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+service.Filename(dataset))
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	c.Writer.Write([]byte(body))
}

// ExportGiftsCSV - GET /api/admin/export/gifts.csv
// Always re-fetches fresh data, bypassing the page cache
func (h *Handlers) ExportGiftsCSV(c *gin.Context) {
	body, err := h.services.Export.GiftsCSV(c.Request.Context())
	if err != nil {
		slog.Error("Failed to export gifts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export gifts"})
		return
	}

	writeCSV(c, "gifts", body)
}

// ExportConfirmationsCSV - GET /api/admin/export/confirmations.csv
func (h *Handlers) ExportConfirmationsCSV(c *gin.Context) {
	body, err := h.services.Export.ConfirmationsCSV(c.Request.Context())
	if err != nil {
		slog.Error("Failed to export confirmations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export confirmations"})
		return
	}

	writeCSV(c, "confirmations", body)
}

// UploadImage - POST /api/admin/images
// Multipart upload to the blob store; returns the public URL
func (h *Handlers) UploadImage(c *gin.Context) {
	if h.blobClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 5 MiB limit"})
		return
	}

	folder := c.PostForm("folder")
	switch folder {
	case "":
		folder = external.FolderGifts
	case external.FolderGifts, external.FolderHeader:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder must be gifts or header"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("Failed to open uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.blobClient.Upload(c.Request.Context(), folder, contentType, data)
	if err != nil {
		slog.Error("Failed to upload image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
