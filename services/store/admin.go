package store

import (
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

// maxSecurityLogEntries caps the rolling security log; oldest entries are
// evicted first.
const maxSecurityLogEntries = 500

// AppendSecurityLog records an auth-relevant event. Logging failures are
// reported but never block the triggering operation.
func (s *Store) AppendSecurityLog(event, email, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.SecurityLogEntry
	if _, err := s.kv.Get(KeySecurityLogs, &entries); err != nil {
		return err
	}
	entries = append(entries, models.SecurityLogEntry{
		ID:        uuid.NewString(),
		Event:     event,
		Email:     email,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if len(entries) > maxSecurityLogEntries {
		entries = entries[len(entries)-maxSecurityLogEntries:]
	}
	return s.persistKeyed(KeySecurityLogs, entries)
}

// ListSecurityLogs returns the rolling security log, newest first.
func (s *Store) ListSecurityLogs() ([]models.SecurityLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []models.SecurityLogEntry{}
	if _, err := s.kv.Get(KeySecurityLogs, &entries); err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// GetSiteSettings returns the persisted settings, falling back to defaults.
func (s *Store) GetSiteSettings() (models.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.DefaultSiteSettings()
	if _, err := s.kv.Get(KeySiteSettings, &settings); err != nil {
		return models.DefaultSiteSettings(), err
	}
	return settings, nil
}

// UpdateSiteSettings replaces the settings blob.
func (s *Store) UpdateSiteSettings(settings models.SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistKeyed(KeySiteSettings, settings); err != nil {
		return err
	}
	s.notify()
	return nil
}
