package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is the place an event is held
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// IntakeForm is a client-submitted event request captured before design work begins.
// Forms are kept as a JSON list in the preference store, not as entity rows.
type IntakeForm struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"fullName"`
	EmailAddress  string    `json:"emailAddress"`
	PhoneNumber   string    `json:"phoneNumber"`
	EventName     string    `json:"eventName"`
	EventDate     time.Time `json:"eventDate"`
	EventTime     time.Time `json:"eventTime"`
	EventLocation Location  `json:"eventLocation"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
