// Package models defines the domain types shared across the application.
package models

import "time"

// NoteSummary is one row of the note list, derived from a note file on
// every listing.
type NoteSummary struct {
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	DisplayDate string    `json:"display_date"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// ActivityEvent is a recorded note mutation.
type ActivityEvent struct {
	ID       int64     `json:"id"`
	Kind     string    `json:"kind"` // "saved", "deleted" or "reloaded"
	Filename string    `json:"filename,omitempty"`
	Title    string    `json:"title,omitempty"`
	At       time.Time `json:"at"`
}
