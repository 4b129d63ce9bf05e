package domain

import "time"

// ContactMessage is a storefront contact form submission
type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}
