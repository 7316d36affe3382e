package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"GameHub/middleware"
	"GameHub/services/dialogs"
)

type dialogRequest struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirm_text"`
	CancelText  string `json:"cancel_text"`
}

// OpenConfirmation godoc
// @Summary Open a confirmation dialog
// @Description Blocks until the dialog is resolved through /auth/dialogs/{id}/resolve. Opening another dialog for the same session dismisses this one.
// @Tags dialogs
// @Accept json
// @Produce json
// @Param body body object{title=string,message=string,confirm_text=string,cancel_text=string} true "Dialog content"
// @Success 200 {object} object{confirmed=bool}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/dialogs/confirm [post]
// @Security ApiKeyAuth
func OpenConfirmation(coord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dialogRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		confirmed, err := coord.Confirm(c.Request.Context(), middleware.SessionID(c), dialogs.Options{
			Title:       req.Title,
			Message:     req.Message,
			ConfirmText: req.ConfirmText,
			CancelText:  req.CancelText,
		})
		if errors.Is(err, dialogs.ErrDismissed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Dialog was dismissed"})
			return
		}
		if err != nil {
			// Client went away while the dialog was open.
			c.Status(http.StatusRequestTimeout)
			return
		}
		c.JSON(http.StatusOK, gin.H{"confirmed": confirmed})
	}
}

// OpenAlert godoc
// @Summary Open an alert dialog
// @Description Blocks until the alert is acknowledged or dismissed
// @Tags dialogs
// @Accept json
// @Produce json
// @Param body body object{title=string,message=string,confirm_text=string} true "Dialog content"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/dialogs/alert [post]
// @Security ApiKeyAuth
func OpenAlert(coord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dialogRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		err := coord.Alert(c.Request.Context(), middleware.SessionID(c), dialogs.Options{
			Title:       req.Title,
			Message:     req.Message,
			ConfirmText: req.ConfirmText,
		})
		if errors.Is(err, dialogs.ErrDismissed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Dialog was dismissed"})
			return
		}
		if err != nil {
			c.Status(http.StatusRequestTimeout)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Alert acknowledged"})
	}
}

// ResolveDialog godoc
// @Summary Resolve the active dialog
// @Description Delivers the button choice and unblocks the waiting opener
// @Tags dialogs
// @Accept json
// @Produce json
// @Param id path string true "Dialog id"
// @Param body body object{confirmed=bool} true "Button choice"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/dialogs/{id}/resolve [post]
// @Security ApiKeyAuth
func ResolveDialog(coord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Confirmed bool `json:"confirmed"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if !coord.Resolve(middleware.SessionID(c), c.Param("id"), req.Confirmed) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No matching active dialog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Dialog resolved"})
	}
}

// GetActiveDialog godoc
// @Summary Get the session's active dialog
// @Tags dialogs
// @Produce json
// @Success 200 {object} dialogs.Dialog
// @Failure 404 {object} object{error=string}
// @Router /auth/dialogs/active [get]
// @Security ApiKeyAuth
func GetActiveDialog(coord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		dialog, ok := coord.Active(middleware.SessionID(c))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active dialog"})
			return
		}
		c.JSON(http.StatusOK, dialog)
	}
}

// CloseDialogs godoc
// @Summary Dismiss the session's dialogs
// @Description Unblocks any waiting opener with a dismissal
// @Tags dialogs
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/dialogs [delete]
// @Security ApiKeyAuth
func CloseDialogs(coord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		coord.HideAll(middleware.SessionID(c))
		c.JSON(http.StatusOK, gin.H{"message": "Dialogs dismissed"})
	}
}
