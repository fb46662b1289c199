package notes

import "time"

// NoteContent is a generated post before it is saved.
type NoteContent struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	ImagePrompt string   `json:"imagePrompt,omitempty"`
}

// SavedNote is a NoteContent persisted in the store.
type SavedNote struct {
	NoteContent
	ID               string `json:"id"`
	CreatedAt        int64  `json:"createdAt"` // Unix milliseconds
	CoverImageBase64 string `json:"coverImageBase64,omitempty"`
}

// Created returns CreatedAt as a time.Time.
func (n SavedNote) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// HasCover reports whether the note still carries its cover image.
func (n SavedNote) HasCover() bool {
	return n.CoverImageBase64 != ""
}
