package models

import (
	"time"
)

// FriendRequest is a pending invitation from one user to another.
type FriendRequest struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	CreatedAt time.Time `json:"created_at"`
}

/*
 * 'Friendship' is one side of an accepted friend link. Accepting a request
 * writes a symmetric pair, one record on each user's list.
 */
type Friendship struct {
	FriendID string    `json:"friend_id"`
	Since    time.Time `json:"since"`
}
