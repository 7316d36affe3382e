package models

// Stats holds derived counters over the portal collections. Nothing here is
// persisted, every field is recomputed on request.
type Stats struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	BlockedUsers      int `json:"blocked_users"`
	TotalGames        int `json:"total_games"`
	TotalNews         int `json:"total_news"`
	OpenTickets       int `json:"open_tickets"`
	InProgressTickets int `json:"in_progress_tickets"`
	ResolvedTickets   int `json:"resolved_tickets"`
}
