package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"cradle/internal/external"
	"cradle/internal/models"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	mailer *external.MailerClient
}

func NewHandlers(mailer *external.MailerClient) *Handlers {
	return &Handlers{mailer: mailer}
}

func (h *Handlers) HandleGiftSelected(m *stan.Msg) {
	var event models.GiftSelectedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal gift selected event", "error", err)
		return
	}

	slog.Info("Processing gift selected event", "gift_id", event.GiftID, "guest", event.GuestName)

	subject := fmt.Sprintf("Gift reserved: %s", event.GiftName)
	body := fmt.Sprintf("<p><strong>%s</strong> reserved <strong>%s</strong> (x%d).</p>",
		html.EscapeString(event.GuestName), html.EscapeString(event.GiftName), event.Quantity)
	h.send(subject, body)

	m.Ack()
}

func (h *Handlers) HandleGiftSuggested(m *stan.Msg) {
	var event models.GiftSuggestedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal gift suggested event", "error", err)
		return
	}

	slog.Info("Processing gift suggested event", "gift_id", event.GiftID, "suggester", event.SuggesterName)

	subject := fmt.Sprintf("New suggestion: %s", event.GiftName)
	body := fmt.Sprintf("<p><strong>%s</strong> suggested and reserved <strong>%s</strong>.</p>",
		html.EscapeString(event.SuggesterName), html.EscapeString(event.GiftName))
	h.send(subject, body)

	m.Ack()
}

func (h *Handlers) HandleConfirmationCreated(m *stan.Msg) {
	var event models.ConfirmationCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal confirmation created event", "error", err)
		return
	}

	slog.Info("Processing confirmation created event", "confirmation_id", event.ConfirmationID)

	escaped := make([]string, len(event.Names))
	for i, name := range event.Names {
		escaped[i] = html.EscapeString(name)
	}

	subject := "New attendance confirmation"
	body := fmt.Sprintf("<p>Confirmed attendees:</p><p>%s</p>", strings.Join(escaped, "<br>"))
	h.send(subject, body)

	m.Ack()
}

// send delivers one notification email. Failures are logged, never retried.
func (h *Handlers) send(subject, body string) {
	if !h.mailer.Enabled() {
		slog.Debug("Mailer not configured, skipping notification", "subject", subject)
		return
	}

	if err := h.mailer.Send(context.Background(), subject, body); err != nil {
		slog.Error("Failed to send notification email", "subject", subject, "error", err)
	}
}
