package handlers

import (
	"net/http"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
)

// ContentHandler handles HTTP requests for AI assisted drafting.
type ContentHandler struct {
	content service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ParseRequest is the body of POST /api/content/parse.
type ParseRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

// VariationsRequest is the body of POST /api/content/variations.
type VariationsRequest struct {
	Note  notes.NoteContent `json:"note"`
	Count int               `json:"count,omitempty"`
}

// VariationsResponse wraps rewritten versions.
type VariationsResponse struct {
	Versions []service.RewrittenVersion `json:"versions"`
}

// AuditRequest is the body of POST /api/content/audit.
type AuditRequest struct {
	Text string `json:"text"`
}

// TopicsRequest is the body of POST /api/content/topics.
type TopicsRequest struct {
	Keyword string `json:"keyword"`
}

// BatchRequest is the body of POST /api/content/batch.
type BatchRequest struct {
	Topic         string   `json:"topic"`
	ExcludeAngles []string `json:"excludeAngles,omitempty"`
}

// DraftsResponse wraps generated drafts.
type DraftsResponse struct {
	Notes []notes.NoteContent `json:"notes"`
}

// CoverRequest is the body of POST /api/content/cover.
type CoverRequest struct {
	Prompt string `json:"prompt"`
}

// CoverResponse carries a generated cover.
type CoverResponse struct {
	ImageBase64 string `json:"imageBase64"`
}

// decodeOrReject decodes the body into v, writing a 400 on failure.
func decodeOrReject(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Parse extracts a note from pasted text or a screenshot.
func (h *ContentHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	note, err := h.content.ParseContent(ctx, req.Text, req.ImageBase64)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to parse content")
		return
	}
	writeJSON(w, ctx, http.StatusOK, note)
}

// Variations rewrites a note in several styles.
func (h *ContentHandler) Variations(w http.ResponseWriter, r *http.Request) {
	var req VariationsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	versions, err := h.content.GenerateVariations(ctx, req.Note, req.Count)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate variations")
		return
	}
	writeJSON(w, ctx, http.StatusOK, VariationsResponse{Versions: versions})
}

// Audit checks text for sensitive or non-compliant wording.
func (h *ContentHandler) Audit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	result, err := h.content.AuditContent(ctx, req.Text)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to audit content")
		return
	}
	writeJSON(w, ctx, http.StatusOK, result)
}

// Topics drafts notes on trending angles for a keyword.
func (h *ContentHandler) Topics(w http.ResponseWriter, r *http.Request) {
	var req TopicsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	drafts, err := h.content.FindViralTopics(ctx, req.Keyword)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to find topics")
		return
	}
	writeJSON(w, ctx, http.StatusOK, DraftsResponse{Notes: drafts})
}

// Batch drafts a batch of notes on one topic.
func (h *ContentHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	drafts, err := h.content.GenerateBatch(ctx, req.Topic, req.ExcludeAngles)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate batch")
		return
	}
	writeJSON(w, ctx, http.StatusOK, DraftsResponse{Notes: drafts})
}

// Cover generates a cover image.
func (h *ContentHandler) Cover(w http.ResponseWriter, r *http.Request) {
	var req CoverRequest
	if !decodeOrReject(w, r, &req) {
		return
	}
	ctx := r.Context()

	image, err := h.content.GenerateCover(ctx, req.Prompt)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate cover")
		return
	}
	writeJSON(w, ctx, http.StatusOK, CoverResponse{ImageBase64: image})
}
