package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"GameHub/services/store"
)

// GetStats godoc
// @Summary Portal statistics
// @Description Admin-only derived counters: users by status, catalog size, tickets by status
// @Tags admin
// @Produce json
// @Success 200 {object} models.Stats
// @Router /auth/admin/stats [get]
// @Security ApiKeyAuth
func GetStats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		c.JSON(http.StatusOK, s.GetStats())
	}
}
