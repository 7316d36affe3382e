package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/store"
)

// ListGames godoc
// @Summary List the game catalog
// @Tags games
// @Produce json
// @Success 200 {array} models.Game
// @Router /games [get]
func ListGames(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.GetAllGames())
	}
}

// GetGame godoc
// @Summary Get a game by id
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} models.Game
// @Failure 404 {object} object{error=string}
// @Router /games/{id} [get]
func GetGame(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, found := s.GetGameByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, game)
	}
}

// SearchGames godoc
// @Summary Search the catalog
// @Description Matches title and/or description. Queries typed in the wrong keyboard layout still match.
// @Tags games
// @Produce json
// @Param q query string false "Search query"
// @Param filter query string false "all, title or description" default(all)
// @Success 200 {array} models.Game
// @Router /games/search [get]
func SearchGames(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		filter := c.DefaultQuery("filter", store.SearchFilterAll)
		c.JSON(http.StatusOK, s.SearchGames(query, filter))
	}
}

type gameRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
}

// AddGame godoc
// @Summary Add a game to the catalog
// @Description Admin-only catalog insertion
// @Tags games
// @Accept json
// @Produce json
// @Param body body object{title=string,description=string,image=string,genre=string,rating=number,price=number} true "Game"
// @Success 201 {object} models.Game
// @Failure 400 {object} object{error=string}
// @Router /auth/admin/games [post]
// @Security ApiKeyAuth
func AddGame(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}

		var req gameRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game title is required"})
			return
		}

		game, err := s.AddGame(models.Game{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Image:       req.Image,
			Genre:       req.Genre,
			Rating:      req.Rating,
			Price:       req.Price,
		})
		if err != nil {
			log.Printf("Error persisting game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding game"})
			return
		}
		c.JSON(http.StatusCreated, game)
	}
}

// UpdateGame godoc
// @Summary Update a catalog entry
// @Description Admin-only. Only the fields present in the body are changed.
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Game id"
// @Param body body object{title=string,description=string,image=string,genre=string,rating=number,price=number} true "Fields to update"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/games/{id} [patch]
// @Security ApiKeyAuth
func UpdateGame(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}

		var req struct {
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			Image       *string  `json:"image"`
			Genre       *string  `json:"genre"`
			Rating      *float64 `json:"rating"`
			Price       *float64 `json:"price"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		found, err := s.UpdateGame(c.Param("id"), store.GameUpdate{
			Title:       req.Title,
			Description: req.Description,
			Image:       req.Image,
			Genre:       req.Genre,
			Rating:      req.Rating,
			Price:       req.Price,
		})
		if err != nil {
			log.Printf("Error updating game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating game"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully"})
	}
}

// DeleteGame godoc
// @Summary Remove a game from the catalog
// @Description Admin-only catalog removal
// @Tags games
// @Produce json
// @Param id path string true "Game id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/games/{id} [delete]
// @Security ApiKeyAuth
func DeleteGame(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		found, err := s.DeleteGame(c.Param("id"))
		if err != nil {
			log.Printf("Error deleting game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting game"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
	}
}
