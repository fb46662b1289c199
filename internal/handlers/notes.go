package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/export"
	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
)

// LibraryHandler handles HTTP requests for the saved-note library.
type LibraryHandler struct {
	library service.LibraryService
	now     func() time.Time
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(library service.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		library: library,
		now:     time.Now,
	}
}

// SaveNoteRequest is the body of POST /api/notes.
type SaveNoteRequest struct {
	notes.NoteContent
	CoverImageBase64 string `json:"coverImageBase64,omitempty"`
}

// IDsRequest carries a selection of note ids.
type IDsRequest struct {
	IDs []string `json:"ids"`
}

// NotesResponse lists saved notes.
type NotesResponse struct {
	Notes []notes.SavedNote `json:"notes"`
	Total int               `json:"total"`
}

// List returns saved notes, newest first.
//
// q filters by a case-insensitive match on title or tags. Covers are omitted
// when the query has covers=false, which keeps listings small.
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	withCovers := true
	if raw := r.URL.Query().Get("covers"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "covers must be a boolean")
			return
		}
		withCovers = v
	}

	var list []notes.SavedNote
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		list = h.library.Search(ctx, q)
	} else {
		list = h.library.List(ctx)
	}
	if list == nil {
		list = []notes.SavedNote{}
	}
	if !withCovers {
		for i := range list {
			list[i].CoverImageBase64 = ""
		}
	}

	writeJSON(w, ctx, http.StatusOK, NotesResponse{Notes: list, Total: len(list)})
}

// Save persists a note with an optional cover.
func (h *LibraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SaveNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.library.Save(ctx, req.NoteContent, req.CoverImageBase64); err != nil {
		handleServiceError(w, ctx, err, "Failed to save note")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Delete removes the selected notes and returns the remaining collection.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IDsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	remaining, err := h.library.Delete(ctx, req.IDs)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to delete notes")
		return
	}
	if remaining == nil {
		remaining = []notes.SavedNote{}
	}

	writeJSON(w, ctx, http.StatusOK, NotesResponse{Notes: remaining, Total: len(remaining)})
}

// Clear removes every saved note.
func (h *LibraryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.library.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Stats reports library counters.
func (h *LibraryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, ctx, http.StatusOK, h.library.Stats(ctx, h.now()))
}

// Export returns the selected notes as a ZIP download.
func (h *LibraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IDsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := h.now()

	// Buffered so a failed export can still be reported as JSON.
	var buf bytes.Buffer
	if _, err := h.library.Export(ctx, req.IDs, &buf, now); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "None of the selected notes exist")
			return
		}
		handleServiceError(w, ctx, err, "Failed to export notes")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, export.FolderName(now)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.ErrorContext(ctx, "failed to write export", "error", err)
	}
}
