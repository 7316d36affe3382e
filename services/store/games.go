package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

// Search filters restricting which game fields are matched.
const (
	SearchFilterAll         = "all"
	SearchFilterTitle       = "title"
	SearchFilterDescription = "description"
)

// GameUpdate carries the fields an update may touch; nil fields are left
// unchanged.
type GameUpdate struct {
	Title       *string
	Description *string
	Image       *string
	Genre       *string
	Rating      *float64
	Price       *float64
}

// GetAllGames returns a copy of the game collection.
func (s *Store) GetAllGames() []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]models.Game, len(s.games))
	copy(games, s.games)
	return games
}

// GetGameByID looks a game up by id. The boolean is false when absent.
func (s *Store) GetGameByID(id string) (models.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.gameIdx[id]
	if !ok {
		return models.Game{}, false
	}
	return s.games[i], true
}

// AddGame assigns id and creation time, appends and persists.
func (s *Store) AddGame(game models.Game) (models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game.ID = uuid.NewString()
	game.CreatedAt = time.Now()

	err := s.commit(KeyGames, func() error {
		s.games = append(s.games, game)
		s.gameIdx[game.ID] = len(s.games) - 1
		return nil
	})
	if err != nil {
		return models.Game{}, err
	}
	s.notify()
	return game, nil
}

// UpdateGame merges the set fields into the game. Returns false when the id
// is unknown.
func (s *Store) UpdateGame(id string, updates GameUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyGames, func() error {
		found = false
		i, ok := s.gameIdx[id]
		if !ok {
			return errNoChange
		}
		if updates.Title != nil {
			s.games[i].Title = *updates.Title
		}
		if updates.Description != nil {
			s.games[i].Description = *updates.Description
		}
		if updates.Image != nil {
			s.games[i].Image = *updates.Image
		}
		if updates.Genre != nil {
			s.games[i].Genre = *updates.Genre
		}
		if updates.Rating != nil {
			s.games[i].Rating = *updates.Rating
		}
		if updates.Price != nil {
			s.games[i].Price = *updates.Price
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

// DeleteGame removes the game by id. Returns false when the id is unknown.
func (s *Store) DeleteGame(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyGames, func() error {
		found = false
		i, ok := s.gameIdx[id]
		if !ok {
			return errNoChange
		}
		s.games = append(s.games[:i], s.games[i+1:]...)
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

// SearchGames returns every game whose title/description (per filter)
// contains the query, tolerating queries typed in the wrong keyboard layout.
// An empty query returns the full collection.
func (s *Store) SearchGames(query, filter string) []models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		games := make([]models.Game, len(s.games))
		copy(games, s.games)
		return games
	}

	matches := []models.Game{}
	for _, game := range s.games {
		matched := false
		switch filter {
		case SearchFilterTitle:
			matched = matchesLayoutAware(game.Title, query)
		case SearchFilterDescription:
			matched = matchesLayoutAware(game.Description, query)
		default:
			matched = matchesLayoutAware(game.Title, query) ||
				matchesLayoutAware(game.Description, query)
		}
		if matched {
			matches = append(matches, game)
		}
	}
	return matches
}

// SeedGames loads the static catalog asset into an empty game collection.
// A non-empty collection is left alone so admin edits survive restarts.
func (s *Store) SeedGames(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading games asset %s: %w", path, err)
	}
	var seed []models.Game
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("error decoding games asset %s: %w", path, err)
	}

	now := time.Now()
	for i := range seed {
		if seed[i].ID == "" {
			seed[i].ID = uuid.NewString()
		}
		if seed[i].CreatedAt.IsZero() {
			seed[i].CreatedAt = now
		}
	}

	seeded := false
	err = s.commit(KeyGames, func() error {
		seeded = false
		if len(s.games) > 0 {
			return errNoChange
		}
		s.games = append(s.games, seed...)
		s.reindex()
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}
	if seeded {
		s.notify()
	}
	return nil
}
