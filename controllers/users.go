package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/notifications"
	"GameHub/services/store"
	"GameHub/utils"
)

// Renames are limited to maxUsernameChanges per usernameChangeWindow.
const (
	maxUsernameChanges   = 3
	usernameChangeWindow = 30 * 24 * time.Hour
)

// GetAllUsers godoc
// @Summary List all users
// @Description Returns the public info of every account
// @Tags users
// @Produce json
// @Success 200 {array} object{id=string,username=string,avatar=string}
// @Router /allusers [get]
func GetAllUsers(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := s.GetAllUsers()
		public := make([]gin.H, len(users))
		for i, user := range users {
			public[i] = user.PublicInfo()
		}
		c.JSON(http.StatusOK, public)
	}
}

// GetUserPublicInfo godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} object{id=string,username=string,avatar=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [get]
func GetUserPublicInfo(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, found := s.GetUserByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user.PublicInfo())
	}
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Avatar      *string `json:"avatar"`
	Description *string `json:"description"`
}

// UpdateUserInfo godoc
// @Summary Update the authenticated account
// @Description Updates username (rate limited), avatar and/or description
// @Tags users
// @Accept json
// @Produce json
// @Param body body object{username=string,avatar=string,description=string} true "Fields to update"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		updates := store.UserUpdate{Avatar: req.Avatar}
		if req.Description != nil {
			if err := utils.CheckDescription(*req.Description); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates.Description = req.Description
		}
		if req.Username != nil && *req.Username != user.Username {
			if err := utils.CheckUsername(*req.Username); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			now := time.Now()
			if now.Before(user.NextUsernameChange) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":       "Username change limit reached",
					"retry_after": user.NextUsernameChange,
				})
				return
			}
			attempts := user.UsernameChangeAttempts + 1
			updates.Username = req.Username
			updates.UsernameChangeAttempts = &attempts
			if attempts >= maxUsernameChanges {
				gate := now.Add(usernameChangeWindow)
				reset := 0
				updates.NextUsernameChange = &gate
				updates.UsernameChangeAttempts = &reset
			}
		}

		found, err := s.UpdateUser(user.ID, updates)
		if errors.Is(err, store.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		if err != nil {
			log.Printf("Error updating user %s: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Profile updated", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// SetUserStatus godoc
// @Summary Block or unblock a user
// @Description Admin-only status switch. Blocked users cannot log in.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param body body object{status=string} true "active or blocked"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/users/{id}/status [patch]
// @Security ApiKeyAuth
func SetUserStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := adminUser(c, s)
		if !ok {
			return
		}

		var req struct {
			Status models.UserStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil ||
			(req.Status != models.UserStatusActive && req.Status != models.UserStatusBlocked) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be active or blocked"})
			return
		}

		target, found := s.GetUserByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if _, err := s.UpdateUser(target.ID, store.UserUpdate{Status: &req.Status}); err != nil {
			log.Printf("Error updating status of %s: %v", target.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
			return
		}
		event := "user_unblocked"
		if req.Status == models.UserStatusBlocked {
			event = "user_blocked"
		}
		if err := s.AppendSecurityLog(event, target.Email, "by "+admin.Email); err != nil {
			log.Printf("Error writing security log: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Admin-only account removal
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/users/{id} [delete]
// @Security ApiKeyAuth
func DeleteUser(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		found, err := s.DeleteUser(c.Param("id"))
		if err != nil {
			log.Printf("Error deleting user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
