package models

import (
	"time"
)

// TicketStatus is the lifecycle state of a support ticket. Transitions only
// move forward: open -> in_progress -> resolved.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// MinTicketMessageLength is the minimum length of a ticket message.
const MinTicketMessageLength = 10

// CanTransitionTo reports whether a ticket may move to the given status.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	switch s {
	case TicketStatusOpen:
		return next == TicketStatusInProgress || next == TicketStatusResolved
	case TicketStatusInProgress:
		return next == TicketStatusResolved
	default:
		return false
	}
}

// TicketResponse is a single message on a ticket thread.
type TicketResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

/*
 * 'SupportTicket' is a help request submitted through the contact form,
 * together with its ordered response thread.
 */
type SupportTicket struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Status    TicketStatus     `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Responses []TicketResponse `json:"responses"`
}
