package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
)

// NoteHandler serves a saved note as a rendered HTML page.
type NoteHandler struct {
	library  service.LibraryService
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	Tags    []string
	Created string
	Cover   template.URL
	Content template.HTML
}

// NewNoteHandler creates a new handler for previewing saved notes.
func NewNoteHandler(library service.LibraryService) *NoteHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'PingFang SC', 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 640px;
      line-height: 1.7;
      background: #fafafa;
      color: #222;
    }
    header {
      margin-bottom: 1.5rem;
    }
    h1 {
      margin: 0 0 .5rem;
      font-size: 1.6rem;
    }
    .meta {
      color: #888;
      font-size: .85rem;
    }
    .cover {
      width: 100%;
      aspect-ratio: 3 / 4;
      object-fit: cover;
      border-radius: 12px;
      margin-bottom: 1.5rem;
    }
    article {
      background: #fff;
      border-radius: 12px;
      padding: 1.5rem;
      box-shadow: 0 4px 16px rgba(0, 0, 0, 0.06);
    }
    .tags span {
      display: inline-block;
      margin: .25rem .5rem 0 0;
      color: #ff2442;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <div class="meta">{{.Created}}</div>
  </header>
  {{if .Cover}}<img class="cover" src="{{.Cover}}" alt="cover">{{end}}
  <article>
    {{.Content}}
    {{if .Tags}}<div class="tags">{{range .Tags}}<span>#{{.}}</span>{{end}}</div>{{end}}
  </article>
</body>
</html>`))

	return &NoteHandler{
		library: library,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested saved note as HTML.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "note id is required", http.StatusBadRequest)
		return
	}

	note, err := h.library.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to load note", "id", id, "error", err)
		http.Error(w, "failed to load note", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(note.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData(note, htmlContent)); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}
}

func (h *NoteHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func pageData(note notes.SavedNote, htmlContent string) notePageData {
	data := notePageData{
		Title:   note.Title,
		Tags:    note.Tags,
		Created: note.Created().Format("2006-01-02 15:04"),
		Content: template.HTML(htmlContent),
	}
	if data.Title == "" {
		data.Title = "Untitled note"
	}
	if note.HasCover() {
		data.Cover = template.URL("data:image/png;base64," + note.CoverImageBase64)
	}
	return data
}
