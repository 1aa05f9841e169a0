package models

import "time"

// NATS Event Types
const (
	EventGiftCreated         = "gift.created"
	EventGiftUpdated         = "gift.updated"
	EventGiftDeleted         = "gift.deleted"
	EventGiftSelected        = "gift.selected"
	EventGiftReverted        = "gift.reverted"
	EventGiftSuggested       = "gift.suggested"
	EventConfirmationCreated = "confirmation.created"
	EventSettingsUpdated     = "settings.updated"
)

// GiftSelectedEvent is published after a reservation lands
type GiftSelectedEvent struct {
	GiftID    string    `json:"gift_id"`
	GiftName  string    `json:"gift_name"`
	GuestName string    `json:"guest_name"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// GiftRevertedEvent is published when an admin returns a gift to available
type GiftRevertedEvent struct {
	GiftID    string    `json:"gift_id"`
	Timestamp time.Time `json:"timestamp"`
}

// GiftChangedEvent covers admin create/update/delete of a registry item
type GiftChangedEvent struct {
	GiftID    string    `json:"gift_id"`
	GiftName  string    `json:"gift_name"`
	Timestamp time.Time `json:"timestamp"`
}

// GiftSuggestedEvent is published for guest suggestions (auto-reserved)
type GiftSuggestedEvent struct {
	GiftID        string    `json:"gift_id"`
	GiftName      string    `json:"gift_name"`
	SuggesterName string    `json:"suggester_name"`
	Timestamp     time.Time `json:"timestamp"`
}

// ConfirmationCreatedEvent is published when guests confirm attendance
type ConfirmationCreatedEvent struct {
	ConfirmationID int64     `json:"confirmation_id"`
	Names          []string  `json:"names"`
	Timestamp      time.Time `json:"timestamp"`
}

// SettingsUpdatedEvent is published after the event settings change
type SettingsUpdatedEvent struct {
	Timestamp time.Time `json:"timestamp"`
}
