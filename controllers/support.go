package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/notifications"
	"GameHub/services/store"
	"GameHub/utils"
)

// SubmitTicket godoc
// @Summary Submit a support ticket
// @Description Creates an open ticket and notifies the admin inbox. The message must be at least 10 characters.
// @Tags support
// @Accept json
// @Produce json
// @Param body body object{subject=string,message=string} true "Ticket content"
// @Success 201 {object} models.SupportTicket
// @Failure 400 {object} object{error=string}
// @Router /auth/support [post]
// @Security ApiKeyAuth
func SubmitTicket(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			Subject string `json:"subject"`
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(req.Subject) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subject is required"})
			return
		}
		if err := utils.CheckTicketMessage(req.Message); err != nil {
			toasts.Show(user.ID, models.ToastError, err.Error(), notifications.ShowOptions{})
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ticket, err := s.AddTicket(models.SupportTicket{
			Email:   user.Email,
			Subject: strings.TrimSpace(req.Subject),
			Message: req.Message,
		})
		if err != nil {
			log.Printf("Error persisting ticket: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting ticket"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Support ticket submitted", notifications.ShowOptions{})
		c.JSON(http.StatusCreated, ticket)
	}
}

// ListMyTickets godoc
// @Summary List the authenticated user's tickets
// @Tags support
// @Produce json
// @Success 200 {array} models.SupportTicket
// @Router /auth/support [get]
// @Security ApiKeyAuth
func ListMyTickets(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.GetTicketsByEmail(user.Email))
	}
}

// GetTicket godoc
// @Summary Get a single ticket
// @Description Owners see their own tickets, admins see all
// @Tags support
// @Produce json
// @Param id path string true "Ticket id"
// @Success 200 {object} models.SupportTicket
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/support/{id} [get]
// @Security ApiKeyAuth
func GetTicket(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		ticket, found := s.GetTicketByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		if !user.IsAdmin && !strings.EqualFold(ticket.Email, user.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your ticket"})
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}

// ListAllTickets godoc
// @Summary List every ticket
// @Description Admin-only view over the whole support queue
// @Tags support
// @Produce json
// @Success 200 {array} models.SupportTicket
// @Router /auth/admin/support [get]
// @Security ApiKeyAuth
func ListAllTickets(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		c.JSON(http.StatusOK, s.GetAllTickets())
	}
}

// RespondTicket godoc
// @Summary Reply on a ticket thread
// @Description Owners and admins may reply. An admin reply moves an open ticket to in_progress and notifies the submitter.
// @Tags support
// @Accept json
// @Produce json
// @Param id path string true "Ticket id"
// @Param body body object{message=string} true "Reply text"
// @Success 200 {object} models.SupportTicket
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/support/{id}/responses [post]
// @Security ApiKeyAuth
func RespondTicket(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		ticket, found := s.GetTicketByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		if !user.IsAdmin && !strings.EqualFold(ticket.Email, user.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your ticket"})
			return
		}

		updated, found, err := s.AddTicketResponse(ticket.ID, req.Message, user.IsAdmin)
		if err != nil {
			log.Printf("Error adding ticket response: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding response"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}

		if user.IsAdmin {
			if submitter, ok := s.GetUserByEmail(ticket.Email); ok {
				toasts.Show(submitter.ID, models.ToastInfo, "Support replied to your ticket", notifications.ShowOptions{})
			}
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ResolveTicket godoc
// @Summary Resolve a ticket
// @Description Admin-only. Tickets only move forward: open -> in_progress -> resolved.
// @Tags support
// @Produce json
// @Param id path string true "Ticket id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/admin/support/{id}/resolve [post]
// @Security ApiKeyAuth
func ResolveTicket(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}

		found, err := s.UpdateTicketStatus(c.Param("id"), models.TicketStatusResolved)
		if errors.Is(err, store.ErrBadTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket is already resolved"})
			return
		}
		if err != nil {
			log.Printf("Error resolving ticket: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving ticket"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ticket resolved"})
	}
}

// ListInbox godoc
// @Summary List ticket-driven notifications
// @Description Returns the authenticated user's inbox, newest first
// @Tags support
// @Produce json
// @Success 200 {array} models.UserNotification
// @Router /auth/inbox [get]
// @Security ApiKeyAuth
func ListInbox(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		inbox, err := s.ListUserNotifications(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving notifications"})
			return
		}
		c.JSON(http.StatusOK, inbox)
	}
}

// MarkInboxRead godoc
// @Summary Mark an inbox entry as read
// @Tags support
// @Produce json
// @Param id path string true "Notification id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/inbox/{id}/read [post]
// @Security ApiKeyAuth
func MarkInboxRead(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		found, err := s.MarkUserNotificationRead(user.Email, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notification"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}

// ListAdminInbox godoc
// @Summary List the admin inbox
// @Description Ticket submissions land here, newest first
// @Tags support
// @Produce json
// @Success 200 {array} models.UserNotification
// @Router /auth/admin/inbox [get]
// @Security ApiKeyAuth
func ListAdminInbox(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		inbox, err := s.ListAdminNotifications()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving notifications"})
			return
		}
		c.JSON(http.StatusOK, inbox)
	}
}
