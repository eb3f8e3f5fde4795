package models

import "time"

// FormSubmission is an entry of the public forms inbox (contact, interpreter request, ...)
type FormSubmission struct {
	ID        string                 `json:"id"`
	FormType  string                 `json:"formType"`
	Name      string                 `json:"name,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Document  string                 `json:"document,omitempty"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Notification is an admin notification served by the backend
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
