package models

import (
	"time"
)

// ToastType classifies a transient notification message.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// ToastRecord is one entry in a user's rolling notification history.
type ToastRecord struct {
	ID        string    `json:"id"`
	Type      ToastType `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// UserNotification is a support-ticket-driven message delivered to a user
// inbox (keyed by email) or to the shared admin inbox.
type UserNotification struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
