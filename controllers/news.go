package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/store"
)

// ListNews godoc
// @Summary List news items
// @Tags news
// @Produce json
// @Success 200 {array} models.NewsItem
// @Router /news [get]
func ListNews(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.GetAllNews())
	}
}

// GetNews godoc
// @Summary Get a news item by id
// @Tags news
// @Produce json
// @Param id path string true "News id"
// @Success 200 {object} models.NewsItem
// @Failure 404 {object} object{error=string}
// @Router /news/{id} [get]
func GetNews(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, found := s.GetNewsByID(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// AddNews godoc
// @Summary Publish a news item
// @Description Admin-only. Missing author falls back to the site default.
// @Tags news
// @Accept json
// @Produce json
// @Param body body object{title=string,content=string,author=string} true "News item"
// @Success 201 {object} models.NewsItem
// @Failure 400 {object} object{error=string}
// @Router /auth/admin/news [post]
// @Security ApiKeyAuth
func AddNews(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}

		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			Author  string `json:"author"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "News title is required"})
			return
		}

		item, err := s.AddNews(models.NewsItem{
			Title:   strings.TrimSpace(req.Title),
			Content: req.Content,
			Author:  strings.TrimSpace(req.Author),
		})
		if err != nil {
			log.Printf("Error persisting news item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding news"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateNews godoc
// @Summary Update a news item
// @Description Admin-only. Only the fields present in the body are changed.
// @Tags news
// @Accept json
// @Produce json
// @Param id path string true "News id"
// @Param body body object{title=string,content=string,author=string} true "Fields to update"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/news/{id} [patch]
// @Security ApiKeyAuth
func UpdateNews(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}

		var req struct {
			Title   *string `json:"title"`
			Content *string `json:"content"`
			Author  *string `json:"author"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		found, err := s.UpdateNews(c.Param("id"), store.NewsUpdate{
			Title:   req.Title,
			Content: req.Content,
			Author:  req.Author,
		})
		if err != nil {
			log.Printf("Error updating news item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating news"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "News updated successfully"})
	}
}

// DeleteNews godoc
// @Summary Delete a news item
// @Tags news
// @Produce json
// @Param id path string true "News id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/admin/news/{id} [delete]
// @Security ApiKeyAuth
func DeleteNews(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := adminUser(c, s); !ok {
			return
		}
		found, err := s.DeleteNews(c.Param("id"))
		if err != nil {
			log.Printf("Error deleting news item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting news"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
	}
}
