package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"GameHub/models"
	"GameHub/services/store"
)

// ClearAllData godoc
// @Summary Wipe every collection
// @Description Admin-only factory reset: users, games, news, tickets and all per-user data
// @Tags admin
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/clear [post]
// @Security ApiKeyAuth
func ClearAllData(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := adminUser(c, s)
		if !ok {
			return
		}
		if err := s.ClearAll(); err != nil {
			log.Printf("Error clearing data: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing data"})
			return
		}
		if err := s.AppendSecurityLog("data_cleared", admin.Email, ""); err != nil {
			log.Printf("Error writing security log: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
	}
}

// GetSiteSettings godoc
// @Summary Read the site settings
// @Tags admin
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /auth/admin/settings [get]
// @Security ApiKeyAuth
func GetSiteSettings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		settings, err := s.GetSiteSettings()
		if err != nil {
			log.Printf("Error reading site settings: %v", err)
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSiteSettings godoc
// @Summary Replace the site settings
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.SiteSettings true "Settings"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/admin/settings [put]
// @Security ApiKeyAuth
func UpdateSiteSettings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := adminUser(c, s)
		if !ok {
			return
		}

		var settings models.SiteSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if err := s.UpdateSiteSettings(settings); err != nil {
			log.Printf("Error updating site settings: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating settings"})
			return
		}
		if err := s.AppendSecurityLog("settings_updated", admin.Email, ""); err != nil {
			log.Printf("Error writing security log: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
	}
}

// SecurityLogs godoc
// @Summary Read the security log
// @Description Admin-only rolling log of auth-relevant events, newest first
// @Tags admin
// @Produce json
// @Success 200 {array} models.SecurityLogEntry
// @Failure 500 {object} object{error=string}
// @Router /auth/admin/security-logs [get]
// @Security ApiKeyAuth
func SecurityLogs(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		entries, err := s.ListSecurityLogs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading security logs"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// EnsureAdmin seeds the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no account with that email exists yet. Called once on
// startup.
func EnsureAdmin(s *store.Store) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if _, found := s.GetUserByEmail(email); found {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.AddUser(models.User{
		Email:        email,
		PasswordHash: string(hash),
		Username:     "admin",
		IsAdmin:      true,
		LastLogin:    time.Now(),
	})
	if errors.Is(err, store.ErrUsernameTaken) {
		// The name is taken but the email is free; keep the seed distinct.
		_, err = s.AddUser(models.User{
			Email:        email,
			PasswordHash: string(hash),
			Username:     "admin-" + time.Now().Format("20060102"),
			IsAdmin:      true,
			LastLogin:    time.Now(),
		})
	}
	if err != nil {
		return err
	}
	log.Printf("Seeded admin account %s", email)
	return nil
}
