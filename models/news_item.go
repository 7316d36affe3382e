package models

import (
	"time"
)

// DefaultNewsAuthor is used when a news item is created without an author.
const DefaultNewsAuthor = "GameHub Team"

// NewsItem is a portal announcement.
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
