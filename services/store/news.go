package store

import (
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

// NewsUpdate carries the fields an update may touch; nil fields are left
// unchanged.
type NewsUpdate struct {
	Title   *string
	Content *string
	Author  *string
}

// GetAllNews returns a copy of the news collection.
func (s *Store) GetAllNews() []models.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	news := make([]models.NewsItem, len(s.news))
	copy(news, s.news)
	return news
}

// GetNewsByID looks a news item up by id. The boolean is false when absent.
func (s *Store) GetNewsByID(id string) (models.NewsItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.newsIdx[id]
	if !ok {
		return models.NewsItem{}, false
	}
	return s.news[i], true
}

// AddNews assigns id, creation time and the default author, appends and
// persists.
func (s *Store) AddNews(item models.NewsItem) (models.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	if item.Author == "" {
		item.Author = models.DefaultNewsAuthor
	}

	err := s.commit(KeyNews, func() error {
		s.news = append(s.news, item)
		s.newsIdx[item.ID] = len(s.news) - 1
		return nil
	})
	if err != nil {
		return models.NewsItem{}, err
	}
	s.notify()
	return item, nil
}

// UpdateNews merges the set fields into the news item. Returns false when
// the id is unknown.
func (s *Store) UpdateNews(id string, updates NewsUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyNews, func() error {
		found = false
		i, ok := s.newsIdx[id]
		if !ok {
			return errNoChange
		}
		if updates.Title != nil {
			s.news[i].Title = *updates.Title
		}
		if updates.Content != nil {
			s.news[i].Content = *updates.Content
		}
		if updates.Author != nil {
			s.news[i].Author = *updates.Author
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

// DeleteNews removes the news item by id. Returns false when the id is
// unknown.
func (s *Store) DeleteNews(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	err := s.commit(KeyNews, func() error {
		found = false
		i, ok := s.newsIdx[id]
		if !ok {
			return errNoChange
		}
		s.news = append(s.news[:i], s.news[i+1:]...)
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
