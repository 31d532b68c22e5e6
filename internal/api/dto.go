package api

import (
	"github.com/starford/pocketnotes/internal/models"
)

// SaveNoteRequest is the request body for creating or updating a note.
type SaveNoteRequest struct {
	Content string `json:"content" example:"Groceries\nMilk"`
}

// NoteSummary is one row of the list response (aliased from the domain layer).
type NoteSummary = models.NoteSummary

// NoteListResponse wraps the ordered note list.
type NoteListResponse struct {
	Notes   []NoteSummary `json:"notes" validate:"required"`
	Count   int           `json:"count" example:"3" validate:"required"`
	Label   string        `json:"label" example:"3 Notes" validate:"required"`
	Warning string        `json:"warning,omitempty"`
}

// CreateNoteResponse is returned after creating a note.
type CreateNoteResponse struct {
	NoteListResponse
	Filename string `json:"filename" example:"0F8B0C3E-6C1A-4C53-9E0F-4B1D2E3F4A5B.txt"`
}

// NoteDetail is the response payload for a single note.
type NoteDetail struct {
	Filename string `json:"filename" example:"0F8B0C3E-6C1A-4C53-9E0F-4B1D2E3F4A5B.txt" validate:"required"`
	Content  string `json:"content" example:"Groceries\nMilk" validate:"required"`
	Checksum string `json:"checksum" example:"abc123..." validate:"required"`
}

// FilenameResponse carries a freshly generated filename.
type FilenameResponse struct {
	Filename string `json:"filename" example:"0F8B0C3E-6C1A-4C53-9E0F-4B1D2E3F4A5B.txt" validate:"required"`
}

// ActivityResponse wraps recent journal events.
type ActivityResponse struct {
	Events []models.ActivityEvent `json:"events" validate:"required"`
}
