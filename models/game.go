package models

import (
	"time"
)

/*
 * 'Game' is a catalog entry shown on the portal front page. Display metadata
 * (genre, rating, price) is optional.
 */
type Game struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Genre       string    `json:"genre,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	Price       float64   `json:"price,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
