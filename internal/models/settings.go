package models

// EventSettings is the singleton record describing the baby-shower event
type EventSettings struct {
	Title          string  `json:"title" db:"title"`
	BabyName       *string `json:"babyName,omitempty" db:"baby_name"`
	Date           string  `json:"date" db:"event_date"`
	Time           string  `json:"time" db:"event_time"`
	Location       string  `json:"location" db:"location"`
	Address        string  `json:"address" db:"address"`
	WelcomeMessage string  `json:"welcomeMessage" db:"welcome_message"`
	HeaderImageURL *string `json:"headerImageUrl,omitempty" db:"header_image_url"`
}

// DefaultEventSettings seeds the singleton on first read
func DefaultEventSettings() *EventSettings {
	return &EventSettings{
		Title:          "Baby Shower",
		Date:           "2026-01-01",
		Time:           "15:00",
		Location:       "",
		Address:        "",
		WelcomeMessage: "Welcome to our baby shower!",
	}
}

// UpdateEventSettingsRequest merge-writes the singleton; nil fields are kept.
// BabyName and HeaderImageURL accept empty strings, which normalize to NULL.
type UpdateEventSettingsRequest struct {
	Title          *string `json:"title,omitempty"`
	BabyName       *string `json:"babyName,omitempty"`
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	Location       *string `json:"location,omitempty"`
	Address        *string `json:"address,omitempty"`
	WelcomeMessage *string `json:"welcomeMessage,omitempty"`
	HeaderImageURL *string `json:"headerImageUrl,omitempty"`
}

// CalendarLinkResponse carries the templated calendar URL for the event
type CalendarLinkResponse struct {
	URL string `json:"url"`
}
