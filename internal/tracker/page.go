package tracker

import "time"

// Page is everything rendered for one visit.
type Page struct {
	Title          string      `json:"title"`
	Visits         int         `json:"visits"`
	SessionID      string      `json:"session_id"`
	CreatedAt      time.Time   `json:"created_at"`
	LastAccessedAt time.Time   `json:"last_accessed_at"`
	ClientIP       string      `json:"client_ip"`
	Env            []EnvVar    `json:"env"`
	Runtime        RuntimeInfo `json:"runtime"`
}
