package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_library_service.go -package=mocks -mock_names=LibraryService=MockLibraryService rednote-ops/internal/service LibraryService

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/export"
	"rednote-ops/internal/notes"
)

// NoteStore is the saved-note collection the library works on.
type NoteStore interface {
	ListAll(ctx context.Context) []notes.SavedNote
	Save(ctx context.Context, note notes.NoteContent, coverImage string) bool
	DeleteMany(ctx context.Context, ids []string) ([]notes.SavedNote, error)
	ClearAll(ctx context.Context)
}

// LibraryStats summarises the saved notes.
type LibraryStats struct {
	Total        int `json:"total"`
	CreatedToday int `json:"createdToday"`
	WithCover    int `json:"withCover"`
}

// LibraryService manages the user's saved notes.
type LibraryService interface {
	// List returns all saved notes, newest first.
	List(ctx context.Context) []notes.SavedNote
	// Search returns the saved notes whose title or any tag contains query,
	// ignoring case. A blank query matches everything.
	Search(ctx context.Context, query string) []notes.SavedNote
	// Get returns a single saved note.
	Get(ctx context.Context, id string) (notes.SavedNote, error)
	// Save persists a note and its optional base64 cover.
	Save(ctx context.Context, note notes.NoteContent, coverImageBase64 string) error
	// Delete removes the given notes and returns what remains.
	Delete(ctx context.Context, ids []string) ([]notes.SavedNote, error)
	// Clear removes every saved note.
	Clear(ctx context.Context)
	// Stats counts saved notes relative to now.
	Stats(ctx context.Context, now time.Time) LibraryStats
	// Export writes the selected notes as a ZIP archive and returns how many were written.
	Export(ctx context.Context, ids []string, w io.Writer, now time.Time) (int, error)
}

// libraryService implements LibraryService.
type libraryService struct {
	store NoteStore
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(store NoteStore) LibraryService {
	return &libraryService{store: store}
}

func (s *libraryService) List(ctx context.Context) []notes.SavedNote {
	return s.store.ListAll(ctx)
}

func (s *libraryService) Search(ctx context.Context, query string) []notes.SavedNote {
	all := s.store.ListAll(ctx)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}

	matched := make([]notes.SavedNote, 0, len(all))
	for _, n := range all {
		if matchesQuery(n, query) {
			matched = append(matched, n)
		}
	}
	return matched
}

// matchesQuery reports whether the lower-cased query occurs in the note's title or a tag.
func matchesQuery(n notes.SavedNote, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (s *libraryService) Get(ctx context.Context, id string) (notes.SavedNote, error) {
	for _, n := range s.store.ListAll(ctx) {
		if n.ID == id {
			return n, nil
		}
	}
	return notes.SavedNote{}, ErrNotFound
}

func (s *libraryService) Save(ctx context.Context, note notes.NoteContent, coverImageBase64 string) error {
	logger := contextutil.LoggerFromContext(ctx)

	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	note.Tags = normalizeTags(note.Tags)

	cover := stripDataURL(coverImageBase64)
	if cover != "" {
		if _, err := base64.StdEncoding.DecodeString(cover); err != nil {
			return &ValidationError{Field: "coverImageBase64", Message: "must be base64 encoded"}
		}
	}

	if !s.store.Save(ctx, note, cover) {
		logger.ErrorContext(ctx, "note not saved, storage may be full", "title", note.Title)
		return ErrStorageFull
	}
	return nil
}

func (s *libraryService) Delete(ctx context.Context, ids []string) ([]notes.SavedNote, error) {
	if len(ids) == 0 {
		return nil, &ValidationError{Field: "ids", Message: "cannot be empty"}
	}

	remaining, err := s.store.DeleteMany(ctx, ids)
	if err != nil {
		if errors.Is(err, notes.ErrWriteFailed) {
			return remaining, fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
		return remaining, WrapError(err, "failed to delete notes")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "notes deleted", "requested", len(ids), "remaining", len(remaining))
	return remaining, nil
}

func (s *libraryService) Clear(ctx context.Context) {
	s.store.ClearAll(ctx)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "saved notes cleared")
}

func (s *libraryService) Stats(ctx context.Context, now time.Time) LibraryStats {
	all := s.store.ListAll(ctx)

	stats := LibraryStats{Total: len(all)}
	y, m, d := now.Date()
	for _, n := range all {
		cy, cm, cd := n.Created().In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			stats.CreatedToday++
		}
		if n.HasCover() {
			stats.WithCover++
		}
	}
	return stats
}

func (s *libraryService) Export(ctx context.Context, ids []string, w io.Writer, now time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, &ValidationError{Field: "ids", Message: "cannot be empty"}
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var selected []notes.SavedNote
	for _, n := range s.store.ListAll(ctx) {
		if _, ok := want[n.ID]; ok {
			selected = append(selected, n)
		}
	}
	if len(selected) == 0 {
		return 0, ErrNotFound
	}

	if err := export.WriteZip(w, selected, now); err != nil {
		return 0, WrapError(err, "failed to export notes")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "notes exported", "notes", len(selected))
	return len(selected), nil
}
