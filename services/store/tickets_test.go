package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GameHub/models"
	"GameHub/services/store"
)

func TestAddTicket(t *testing.T) {
	s := newTestStore(t)

	ticket, err := s.AddTicket(models.SupportTicket{
		Email:   "user@example.com",
		Subject: "Broken save",
		Message: "my progress disappeared",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.Responses)

	t.Run("submission lands in the admin inbox", func(t *testing.T) {
		inbox, err := s.ListAdminNotifications()
		assert.NoError(t, err)
		assert.Len(t, inbox, 1)
		assert.Equal(t, ticket.ID, inbox[0].TicketID)
		assert.False(t, inbox[0].Read)
	})
}

func TestAddTicketResponse(t *testing.T) {
	s := newTestStore(t)
	ticket, err := s.AddTicket(models.SupportTicket{
		Email:   "user@example.com",
		Subject: "Broken save",
		Message: "my progress disappeared",
	})
	assert.NoError(t, err)

	t.Run("user reply keeps the ticket open", func(t *testing.T) {
		updated, found, err := s.AddTicketResponse(ticket.ID, "still broken", false)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, models.TicketStatusOpen, updated.Status)
		assert.Len(t, updated.Responses, 1)
	})

	t.Run("admin reply moves the ticket to in_progress and notifies the submitter", func(t *testing.T) {
		updated, found, err := s.AddTicketResponse(ticket.ID, "looking into it", true)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, models.TicketStatusInProgress, updated.Status)

		inbox, err := s.ListUserNotifications("user@example.com")
		assert.NoError(t, err)
		assert.Len(t, inbox, 1)
		assert.Equal(t, ticket.ID, inbox[0].TicketID)
	})

	t.Run("unknown ticket reports not found", func(t *testing.T) {
		_, found, err := s.AddTicketResponse("nope", "hello", false)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestUpdateTicketStatus(t *testing.T) {
	s := newTestStore(t)
	ticket, err := s.AddTicket(models.SupportTicket{
		Email:   "user@example.com",
		Subject: "Broken save",
		Message: "my progress disappeared",
	})
	assert.NoError(t, err)

	t.Run("open to resolved is allowed", func(t *testing.T) {
		found, err := s.UpdateTicketStatus(ticket.ID, models.TicketStatusResolved)
		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("resolved never reopens", func(t *testing.T) {
		found, err := s.UpdateTicketStatus(ticket.ID, models.TicketStatusOpen)
		assert.True(t, found)
		assert.ErrorIs(t, err, store.ErrBadTransition)

		found, err = s.UpdateTicketStatus(ticket.ID, models.TicketStatusInProgress)
		assert.True(t, found)
		assert.ErrorIs(t, err, store.ErrBadTransition)
	})
}

func TestMarkUserNotificationRead(t *testing.T) {
	s := newTestStore(t)
	ticket, err := s.AddTicket(models.SupportTicket{
		Email:   "user@example.com",
		Subject: "Broken save",
		Message: "my progress disappeared",
	})
	assert.NoError(t, err)
	_, _, err = s.AddTicketResponse(ticket.ID, "on it", true)
	assert.NoError(t, err)

	inbox, err := s.ListUserNotifications("user@example.com")
	assert.NoError(t, err)
	assert.Len(t, inbox, 1)

	found, err := s.MarkUserNotificationRead("user@example.com", inbox[0].ID)
	assert.NoError(t, err)
	assert.True(t, found)

	inbox, err = s.ListUserNotifications("user@example.com")
	assert.NoError(t, err)
	assert.True(t, inbox[0].Read)

	found, err = s.MarkUserNotificationRead("user@example.com", "nope")
	assert.NoError(t, err)
	assert.False(t, found)
}
