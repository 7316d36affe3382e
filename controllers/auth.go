package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"GameHub/middleware"
	"GameHub/models"
	"GameHub/services/dialogs"
	"GameHub/services/notifications"
	"GameHub/services/store"
	"GameHub/utils"
)

// SignUp godoc
// @Summary Register a new account
// @Description Creates a portal account and starts a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password (min 8 chars, letter and digit)"
// @Param username formData string true "Display name"
// @Success 201 {object} object{message=string,token=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /signup [post]
func SignUp(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")
		username := strings.TrimSpace(c.PostForm("username"))

		settings, err := s.GetSiteSettings()
		if err != nil {
			log.Printf("Error reading site settings: %v", err)
		}
		if !settings.RegistrationEnabled {
			c.JSON(http.StatusForbidden, gin.H{"error": "Registration is currently disabled"})
			return
		}

		if err := utils.CheckEmail(email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := utils.CheckPassword(password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := utils.CheckUsername(username); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing password"})
			return
		}

		user, err := s.AddUser(models.User{
			Email:        email,
			PasswordHash: string(hash),
			Username:     username,
			LastLogin:    time.Now(),
		})
		if errors.Is(err, store.ErrEmailTaken) || errors.Is(err, store.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already registered"})
			return
		}
		if err != nil {
			log.Printf("Error persisting new user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
			return
		}

		if err := s.AppendSecurityLog("signup", email, ""); err != nil {
			log.Printf("Error writing security log: %v", err)
		}
		if err := middleware.SetSessionEmail(c, email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}
		token, err := middleware.GenerateToken(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Welcome to GameHub, "+username+"!", notifications.ShowOptions{})
		c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully", "token": token})
	}
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and starts a session. Blocked accounts are refused.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /login [post]
func Login(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.PostForm("email"))
		password := c.PostForm("password")

		if email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		user, found := s.GetUserByEmail(email)
		if !found {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			if err := s.AppendSecurityLog("login_failed", email, ""); err != nil {
				log.Printf("Error writing security log: %v", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}
		if user.Status == models.UserStatusBlocked {
			if err := s.AppendSecurityLog("login_blocked", email, ""); err != nil {
				log.Printf("Error writing security log: %v", err)
			}
			c.JSON(http.StatusForbidden, gin.H{"error": "This account is blocked"})
			return
		}

		now := time.Now()
		if _, err := s.UpdateUser(user.ID, store.UserUpdate{LastLogin: &now}); err != nil {
			log.Printf("Error updating last login: %v", err)
		}
		if err := s.AppendSecurityLog("login", email, ""); err != nil {
			log.Printf("Error writing security log: %v", err)
		}

		if err := middleware.SetSessionEmail(c, email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No session!"})
			return
		}
		token, err := middleware.GenerateToken(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Welcome back, "+user.Username+"!", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// Logout godoc
// @Summary Log out
// @Description Ends the session and dismisses any open dialog
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(dialogCoord *dialogs.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		dialogCoord.HideAll(sessionID)
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
	}
}

// GetCurrentUser godoc
// @Summary Get the authenticated account
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetCurrentUser(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
