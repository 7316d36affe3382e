package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

// UserUpdate carries the fields an update may touch; nil fields are left
// unchanged (shallow merge).
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Username     *string
	Avatar       *string
	Description  *string
	Status       *models.UserStatus
	LastLogin    *time.Time

	UsernameChangeAttempts *int
	NextUsernameChange     *time.Time
}

// GetAllUsers returns a copy of the user collection.
func (s *Store) GetAllUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users
}

// GetUserByID looks a user up by id. The boolean is false when absent.
func (s *Store) GetUserByID(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.userIdx[id]
	if !ok {
		return models.User{}, false
	}
	return s.users[i], true
}

// GetUserByEmail looks a user up by email, case-insensitively.
func (s *Store) GetUserByEmail(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findByEmail(email)
	if !ok {
		return models.User{}, false
	}
	return s.users[i], true
}

// UserExists reports whether an account with the given email exists.
func (s *Store) UserExists(email string) bool {
	_, ok := s.GetUserByEmail(email)
	return ok
}

// AddUser assigns id, creation time and defaults, enforces email/username
// uniqueness, appends the user and persists the collection.
func (s *Store) AddUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	err := s.commit(KeyUsers, func() error {
		if _, taken := s.findByEmail(user.Email); taken {
			return ErrEmailTaken
		}
		if _, taken := s.findByUsername(user.Username); taken {
			return ErrUsernameTaken
		}
		s.users = append(s.users, user)
		s.userIdx[user.ID] = len(s.users) - 1
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.notify()
	return user, nil
}

// UpdateUser merges the set fields into the user. Returns false when the id
// is unknown; the collection is left untouched in that case.
func (s *Store) UpdateUser(id string, updates UserUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyUsers, func() error {
		found = false
		i, ok := s.userIdx[id]
		if !ok {
			return errNoChange
		}

		if updates.Email != nil {
			if j, taken := s.findByEmail(*updates.Email); taken && j != i {
				return ErrEmailTaken
			}
		}
		if updates.Username != nil {
			if j, taken := s.findByUsername(*updates.Username); taken && j != i {
				return ErrUsernameTaken
			}
		}

		if updates.Email != nil {
			s.users[i].Email = *updates.Email
		}
		if updates.Username != nil {
			s.users[i].Username = *updates.Username
		}
		if updates.PasswordHash != nil {
			s.users[i].PasswordHash = *updates.PasswordHash
		}
		if updates.Avatar != nil {
			s.users[i].Avatar = *updates.Avatar
		}
		if updates.Description != nil {
			s.users[i].Description = *updates.Description
		}
		if updates.Status != nil {
			s.users[i].Status = *updates.Status
		}
		if updates.LastLogin != nil {
			s.users[i].LastLogin = *updates.LastLogin
		}
		if updates.UsernameChangeAttempts != nil {
			s.users[i].UsernameChangeAttempts = *updates.UsernameChangeAttempts
		}
		if updates.NextUsernameChange != nil {
			s.users[i].NextUsernameChange = *updates.NextUsernameChange
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.notify()
	}
	return found, nil
}

// DeleteUser removes the user by id. Returns false when the id is unknown.
func (s *Store) DeleteUser(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyUsers, func() error {
		found = false
		i, ok := s.userIdx[id]
		if !ok {
			return errNoChange
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		s.reindex()
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		s.notify()
	}
	return found, nil
}

// findByEmail must be called with s.mu held.
func (s *Store) findByEmail(email string) (int, bool) {
	for i, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return i, true
		}
	}
	return 0, false
}

// findByUsername must be called with s.mu held.
func (s *Store) findByUsername(username string) (int, bool) {
	for i, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return i, true
		}
	}
	return 0, false
}
