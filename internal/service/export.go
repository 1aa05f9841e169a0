package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cradle/internal/repository"
)

const csvDateFormat = "2006-01-02 15:04"

type ExportService struct {
	gifts         repository.GiftStore
	confirmations repository.ConfirmationStore
}

func NewExportService(gifts repository.GiftStore, confirmations repository.ConfirmationStore) *ExportService {
	return &ExportService{
		gifts:         gifts,
		confirmations: confirmations,
	}
}

// escapeCSVField escapes a string for CSV format
func escapeCSVField(field string) string {
	// Escape double quotes by doubling them
	escaped := strings.ReplaceAll(field, "\"", "\"\"")
	// Replace newlines with spaces for free-text fields
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return escaped
}

// buildCSVRow quotes every field and joins them into one line
func buildCSVRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = "\"" + escapeCSVField(field) + "\""
	}
	return strings.Join(quoted, ",") + "\n"
}

// Filename builds the download name for a dataset, e.g. gifts_2026-08-25.csv
func Filename(dataset string) string {
	return fmt.Sprintf("%s_%s.csv", dataset, time.Now().Format("2006-01-02"))
}

// GiftsCSV renders the full catalog from fresh data, one row per item plus a
// header line
func (s *ExportService) GiftsCSV(ctx context.Context) (string, error) {
	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list gifts: %w", err)
	}

	var b strings.Builder
	b.WriteString("ID,Name,Description,Category,Status,Selected By,Selection Date,Created At\n")

	for _, gift := range gifts {
		description := ""
		if gift.Description != nil {
			description = *gift.Description
		}
		selectedBy := ""
		if gift.SelectedBy != nil {
			selectedBy = *gift.SelectedBy
		}
		selectionDate := ""
		if gift.SelectionDate != nil {
			selectionDate = gift.SelectionDate.Format(csvDateFormat)
		}

		b.WriteString(buildCSVRow(
			gift.ID,
			gift.Name,
			description,
			gift.Category,
			gift.Status,
			selectedBy,
			selectionDate,
			gift.CreatedAt.Format(csvDateFormat),
		))
	}

	return b.String(), nil
}

// ConfirmationsCSV renders one row per attendee name with the batch's
// confirmation date
func (s *ExportService) ConfirmationsCSV(ctx context.Context) (string, error) {
	attendees, err := s.confirmations.ListAttendees(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list attendees: %w", err)
	}

	var b strings.Builder
	b.WriteString("Name,Confirmed At\n")

	for _, attendee := range attendees {
		b.WriteString(buildCSVRow(
			attendee.Name,
			attendee.ConfirmedAt.Format(csvDateFormat),
		))
	}

	return b.String(), nil
}
