package models

import "time"

// LoadRecord is one fetch attempt as stored in the load history.
type LoadRecord struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Count     int       `json:"member_count"`
	Error     string    `json:"error,omitempty"`
	FromCache bool      `json:"from_cache"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Failed reports whether the attempt ended in an error.
func (r LoadRecord) Failed() bool { return r.Error != "" }

// CachedSource summarizes the cached payload for one source.
type CachedSource struct {
	Source    string    `json:"source"`
	Count     int       `json:"member_count"`
	FetchedAt time.Time `json:"fetched_at"`
}
