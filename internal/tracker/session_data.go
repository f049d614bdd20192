package tracker

// SessionData is the typed per-session state. A nil Analytics means no page
// has been visited in the session yet.
type SessionData struct {
	Analytics *Counter `json:"analytics,omitempty"`
}

// Clone implements session.Cloner.
func (d SessionData) Clone() SessionData {
	return SessionData{Analytics: d.Analytics.Clone()}
}
