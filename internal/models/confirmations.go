package models

import "time"

// Confirmation is one attendance submission; a single guest may submit
// several names at once
type Confirmation struct {
	ID          int64     `json:"id" db:"id"`
	Names       []string  `json:"names"`
	ConfirmedAt time.Time `json:"confirmedAt" db:"confirmed_at"`
}

// Attendee is one flattened name-per-row entry for the admin view
type Attendee struct {
	Name        string    `json:"name"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// CreateConfirmationRequest submits a batch of attendee names
type CreateConfirmationRequest struct {
	Names []string `json:"names" binding:"required"`
}

// CreateConfirmationResponse returns the stored batch
type CreateConfirmationResponse struct {
	ID          int64     `json:"id"`
	Names       []string  `json:"names"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// ListAttendeesResponse is the admin attendance list, most recent batch
// first, names sorted within equal timestamps
type ListAttendeesResponse []Attendee
