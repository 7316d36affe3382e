package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"GameHub/middleware"
	"GameHub/models"
	"GameHub/services/store"
)

// Ping godoc
// @Summary Health check
// @Description Returns pong when the server is up
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// authedUser resolves the authenticated account from the request. On
// failure it writes the error response and returns ok=false.
func authedUser(c *gin.Context, s *store.Store) (models.User, bool) {
	email, err := middleware.JWT_decoder(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.User{}, false
	}
	user, found := s.GetUserByEmail(email)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found: invalid email"})
		return models.User{}, false
	}
	return user, true
}

// adminUser is authedUser plus the admin check.
func adminUser(c *gin.Context, s *store.Store) (models.User, bool) {
	user, ok := authedUser(c, s)
	if !ok {
		return models.User{}, false
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return models.User{}, false
	}
	return user, true
}
