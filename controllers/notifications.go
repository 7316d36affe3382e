package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/notifications"
	"GameHub/services/store"
)

// ShowToast godoc
// @Summary Show a toast
// @Description Creates a toast for the authenticated user. It displays immediately when a slot is free, otherwise it queues.
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body object{type=string,message=string,persistent=bool,duration_ms=int} true "Toast"
// @Success 201 {object} notifications.Toast
// @Failure 400 {object} object{error=string}
// @Router /auth/toasts [post]
// @Security ApiKeyAuth
func ShowToast(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			Type       models.ToastType `json:"type"`
			Message    string           `json:"message"`
			Persistent bool             `json:"persistent"`
			DurationMs int              `json:"duration_ms"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		switch req.Type {
		case models.ToastInfo, models.ToastSuccess, models.ToastWarning, models.ToastError:
		case "":
			req.Type = models.ToastInfo
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown toast type"})
			return
		}

		toast := toasts.Show(user.ID, req.Type, req.Message, notifications.ShowOptions{
			Persistent: req.Persistent,
			Duration:   time.Duration(req.DurationMs) * time.Millisecond,
		})
		c.JSON(http.StatusCreated, toast)
	}
}

// DismissToast godoc
// @Summary Dismiss a toast
// @Description Removes the toast from the display or the backlog; a freed slot refills from the backlog
// @Tags notifications
// @Produce json
// @Param id path string true "Toast id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/toasts/{id} [delete]
// @Security ApiKeyAuth
func DismissToast(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		if !toasts.Dismiss(user.ID, c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Toast not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Toast dismissed"})
	}
}

// ListToasts godoc
// @Summary List live toasts
// @Description Returns the visible window and the FIFO backlog
// @Tags notifications
// @Produce json
// @Success 200 {object} object{visible=array,pending=array}
// @Router /auth/toasts [get]
// @Security ApiKeyAuth
func ListToasts(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"visible": toasts.Visible(user.ID),
			"pending": toasts.Pending(user.ID),
		})
	}
}

// ToastHistory godoc
// @Summary Toast history
// @Description Returns the rolling history, newest first. Entries older than 30 days are dropped.
// @Tags notifications
// @Produce json
// @Success 200 {array} models.ToastRecord
// @Failure 500 {object} object{error=string}
// @Router /auth/toasts/history [get]
// @Security ApiKeyAuth
func ToastHistory(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		history, err := toasts.History(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving history"})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// ClearToastHistory godoc
// @Summary Clear the toast history
// @Tags notifications
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/toasts/history [delete]
// @Security ApiKeyAuth
func ClearToastHistory(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		if err := toasts.ClearHistory(user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
	}
}
