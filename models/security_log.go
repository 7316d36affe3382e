package models

import (
	"time"
)

// SecurityLogEntry records an auth-relevant event (login, failed login,
// registration, block/unblock, wipe).
type SecurityLogEntry struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Email     string    `json:"email"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteSettings is the small bundle of admin-editable portal settings.
type SiteSettings struct {
	SiteName            string `json:"site_name"`
	MaintenanceMode     bool   `json:"maintenance_mode"`
	RegistrationEnabled bool   `json:"registration_enabled"`
}

// DefaultSiteSettings returns the settings used until an admin edits them.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:            "GameHub",
		RegistrationEnabled: true,
	}
}
