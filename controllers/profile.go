package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"GameHub/models"
	"GameHub/services/notifications"
	"GameHub/services/store"
	"GameHub/utils"
)

// ChangePassword godoc
// @Summary Change the account password
// @Description Requires the current password; the new one must pass the policy
// @Tags profile
// @Accept json
// @Produce json
// @Param body body object{current_password=string,new_password=string} true "Password change"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/password [patch]
// @Security ApiKeyAuth
func ChangePassword(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
			return
		}
		if err := utils.CheckPassword(req.NewPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing password"})
			return
		}
		hashStr := string(hash)
		if _, err := s.UpdateUser(user.ID, store.UserUpdate{PasswordHash: &hashStr}); err != nil {
			log.Printf("Error updating password for %s: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating password"})
			return
		}
		if err := s.AppendSecurityLog("password_changed", user.Email, ""); err != nil {
			log.Printf("Error writing security log: %v", err)
		}

		toasts.Show(user.ID, models.ToastSuccess, "Password changed", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// UpdateAvatar godoc
// @Summary Update the profile avatar
// @Tags profile
// @Accept json
// @Produce json
// @Param body body object{avatar=string} true "Image URL or inline data reference"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/avatar [patch]
// @Security ApiKeyAuth
func UpdateAvatar(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			Avatar string `json:"avatar"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Avatar == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar is required"})
			return
		}

		if _, err := s.UpdateUser(user.ID, store.UserUpdate{Avatar: &req.Avatar}); err != nil {
			log.Printf("Error updating avatar for %s: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating avatar"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Avatar updated", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"message": "Avatar updated successfully"})
	}
}
