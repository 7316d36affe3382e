package models

import (
	"time"
)

// UserStatus represents the lifecycle state of a portal account.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

/*
 * 'User' contains the blueprint definition of a portal account. Passwords are
 * only ever stored as bcrypt hashes.
 */
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Username     string     `json:"username"`
	Avatar       string     `json:"avatar"`
	Description  string     `json:"description"`
	Status       UserStatus `json:"status"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    time.Time  `json:"last_login"`

	// Username renames are rate limited: after MaxUsernameChanges attempts the
	// next rename is only allowed once NextUsernameChange has passed.
	UsernameChangeAttempts int       `json:"username_change_attempts"`
	NextUsernameChange     time.Time `json:"next_username_change"`
}

// MaxDescriptionLength caps the profile description.
const MaxDescriptionLength = 150

// PublicInfo returns the subset of user data that other users may see.
func (u *User) PublicInfo() map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"username":    u.Username,
		"avatar":      u.Avatar,
		"description": u.Description,
		"status":      u.Status,
		"created_at":  u.CreatedAt,
	}
}
