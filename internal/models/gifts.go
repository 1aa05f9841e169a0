package models

import "time"

// Gift statuses
const (
	GiftStatusAvailable = "available"
	GiftStatusSelected  = "selected"
	GiftStatusNotNeeded = "not_needed"
)

// DefaultSuggestionCategory is the catch-all category for guest suggestions
const DefaultSuggestionCategory = "Other"

// AdminSelectedBy is the attribution used when an admin marks a gift selected
// without naming a guest
const AdminSelectedBy = "Admin"

// Gift represents a registry item guests may reserve
type Gift struct {
	ID               string     `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Description      *string    `json:"description,omitempty" db:"description"`
	Category         string     `json:"category" db:"category"`
	Status           string     `json:"status" db:"status"`
	SelectedBy       *string    `json:"selectedBy,omitempty" db:"selected_by"`
	SelectionDate    *time.Time `json:"selectionDate,omitempty" db:"selection_date"`
	TotalQuantity    *int       `json:"totalQuantity,omitempty" db:"total_quantity"`
	SelectedQuantity int        `json:"selectedQuantity" db:"selected_quantity"`
	ImageURL         *string    `json:"imageUrl,omitempty" db:"image_url"`
	Priority         *int       `json:"priority,omitempty" db:"priority"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// IsQuantity reports whether the gift supports partial reservation by
// multiple guests up to a total
func (g *Gift) IsQuantity() bool {
	return g.TotalQuantity != nil && *g.TotalQuantity > 0
}

// Remaining returns the unreserved unit count of a quantity gift
func (g *Gift) Remaining() int {
	if !g.IsQuantity() {
		return 0
	}
	remaining := *g.TotalQuantity - g.SelectedQuantity
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SelectGiftRequest reserves a gift (or part of a quantity gift) for a guest
type SelectGiftRequest struct {
	GiftID    string `json:"giftId" binding:"required"`
	GuestName string `json:"guestName" binding:"required"`
	Quantity  int    `json:"quantity,omitempty"`
}

// CreateGiftRequest creates a registry item (admin)
type CreateGiftRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	Status        string  `json:"status,omitempty"`
	SelectedBy    *string `json:"selectedBy,omitempty"`
	TotalQuantity *int    `json:"totalQuantity,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
}

// UpdateGiftRequest patches an existing item; nil fields are left untouched
type UpdateGiftRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	Status        *string `json:"status,omitempty"`
	SelectedBy    *string `json:"selectedBy,omitempty"`
	TotalQuantity *int    `json:"totalQuantity,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	Priority      *int    `json:"priority,omitempty"`
}

// SuggestGiftRequest is a guest-submitted item, auto-reserved by its suggester
type SuggestGiftRequest struct {
	Name          string  `json:"name" binding:"required"`
	SuggesterName string  `json:"suggesterName" binding:"required"`
	Description   *string `json:"description,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// ListGiftsResponse is the public catalog, newest first
type ListGiftsResponse []Gift
