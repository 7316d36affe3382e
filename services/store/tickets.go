package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

// ErrBadTransition is returned when a ticket status change would move
// backwards (resolved tickets stay resolved, in_progress never reopens).
var ErrBadTransition = errors.New("store: invalid ticket status transition")

// GetAllTickets returns a copy of the support ticket collection.
func (s *Store) GetAllTickets() []models.SupportTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	tickets := make([]models.SupportTicket, len(s.tickets))
	copy(tickets, s.tickets)
	return tickets
}

// GetTicketByID looks a ticket up by id. The boolean is false when absent.
func (s *Store) GetTicketByID(id string) (models.SupportTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.ticketIdx[id]
	if !ok {
		return models.SupportTicket{}, false
	}
	return s.tickets[i], true
}

// GetTicketsByEmail returns every ticket submitted from the given address.
func (s *Store) GetTicketsByEmail(email string) []models.SupportTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	tickets := []models.SupportTicket{}
	for _, t := range s.tickets {
		if strings.EqualFold(t.Email, email) {
			tickets = append(tickets, t)
		}
	}
	return tickets
}

// AddTicket assigns id, timestamps and defaults (open, empty thread),
// persists and drops a notification into the admin inbox.
func (s *Store) AddTicket(ticket models.SupportTicket) (models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	ticket.Status = models.TicketStatusOpen
	ticket.Responses = []models.TicketResponse{}

	err := s.commit(KeySupportTickets, func() error {
		s.tickets = append(s.tickets, ticket)
		s.ticketIdx[ticket.ID] = len(s.tickets) - 1
		return nil
	})
	if err != nil {
		return models.SupportTicket{}, err
	}
	if err := s.appendNotification(KeyAdminNotifications, models.UserNotification{
		ID:        uuid.NewString(),
		TicketID:  ticket.ID,
		Message:   fmt.Sprintf("New support ticket from %s: %s", ticket.Email, ticket.Subject),
		CreatedAt: time.Now(),
	}); err != nil {
		return ticket, err
	}
	s.notify()
	return ticket, nil
}

// AddTicketResponse appends a message to the ticket thread. An admin reply
// moves an open ticket to in_progress and notifies the submitter's inbox.
// Returns false when the ticket id is unknown.
func (s *Store) AddTicketResponse(id, message string, isAdmin bool) (models.SupportTicket, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response := models.TicketResponse{
		ID:        uuid.NewString(),
		Message:   message,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now(),
	}

	found := false
	var updated models.SupportTicket
	err := s.commit(KeySupportTickets, func() error {
		found = false
		i, ok := s.ticketIdx[id]
		if !ok {
			return errNoChange
		}
		s.tickets[i].Responses = append(s.tickets[i].Responses, response)
		s.tickets[i].UpdatedAt = response.CreatedAt
		if isAdmin && s.tickets[i].Status == models.TicketStatusOpen {
			s.tickets[i].Status = models.TicketStatusInProgress
		}
		updated = s.tickets[i]
		found = true
		return nil
	})
	if err != nil {
		return models.SupportTicket{}, false, err
	}
	if !found {
		return models.SupportTicket{}, false, nil
	}
	if isAdmin {
		if err := s.appendNotification(FormatUserNotificationsKey(updated.Email), models.UserNotification{
			ID:        uuid.NewString(),
			TicketID:  id,
			Message:   fmt.Sprintf("Support replied to your ticket: %s", updated.Subject),
			CreatedAt: time.Now(),
		}); err != nil {
			return updated, true, err
		}
	}
	s.notify()
	return updated, true, nil
}

// UpdateTicketStatus moves the ticket forward in its lifecycle. Returns
// false when the id is unknown and ErrBadTransition when the move is not
// open -> in_progress -> resolved.
func (s *Store) UpdateTicketStatus(id string, status models.TicketStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeySupportTickets, func() error {
		found = false
		i, ok := s.ticketIdx[id]
		if !ok {
			return errNoChange
		}
		found = true
		if !s.tickets[i].Status.CanTransitionTo(status) {
			return ErrBadTransition
		}
		s.tickets[i].Status = status
		s.tickets[i].UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return found, err
	}
	if found {
		s.notify()
	}
	return found, nil
}

// ListAdminNotifications returns the shared admin inbox, newest first.
func (s *Store) ListAdminNotifications() ([]models.UserNotification, error) {
	return s.listNotifications(KeyAdminNotifications)
}

// ListUserNotifications returns the inbox for the given email, newest first.
func (s *Store) ListUserNotifications(email string) ([]models.UserNotification, error) {
	return s.listNotifications(FormatUserNotificationsKey(email))
}

// MarkUserNotificationRead flags one inbox entry as read. Returns false when
// the entry is unknown.
func (s *Store) MarkUserNotificationRead(email, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := FormatUserNotificationsKey(email)
	var inbox []models.UserNotification
	if _, err := s.kv.Get(key, &inbox); err != nil {
		return false, err
	}
	for i := range inbox {
		if inbox[i].ID == id {
			inbox[i].Read = true
			if err := s.persistKeyed(key, inbox); err != nil {
				return true, err
			}
			s.notify()
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) listNotifications(key string) ([]models.UserNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inbox := []models.UserNotification{}
	if _, err := s.kv.Get(key, &inbox); err != nil {
		return nil, err
	}
	// Newest first.
	for i, j := 0, len(inbox)-1; i < j; i, j = i+1, j-1 {
		inbox[i], inbox[j] = inbox[j], inbox[i]
	}
	return inbox, nil
}

// appendNotification must be called with s.mu held.
func (s *Store) appendNotification(key string, n models.UserNotification) error {
	var inbox []models.UserNotification
	if _, err := s.kv.Get(key, &inbox); err != nil {
		return err
	}
	inbox = append(inbox, n)
	return s.persistKeyed(key, inbox)
}

// persistKeyed writes a per-user keyed collection, CASing against the version
// read in the same critical section. These collections are read-modify-written
// whole, so the fresh read makes the write current by construction.
// Must be called with s.mu held.
func (s *Store) persistKeyed(key string, value interface{}) error {
	version, err := s.kv.Version(key)
	if err != nil {
		return fmt.Errorf("error reading version of %s: %w", key, err)
	}
	if _, err := s.kv.CompareAndSwap(key, value, version); err != nil {
		return fmt.Errorf("error persisting %s: %w", key, err)
	}
	return nil
}
