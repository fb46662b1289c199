package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks rednote-ops/internal/service LLMClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_content_service.go -package=mocks -mock_names=ContentService=MockContentService rednote-ops/internal/service ContentService

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/notes"
)

const (
	// DefaultVariationCount is used when a rewrite request does not set a count.
	DefaultVariationCount = 3
	// MaxVariationCount bounds a single rewrite request.
	MaxVariationCount = 5
	// BatchSize is the number of notes GenerateBatch asks for.
	BatchSize = 5

	coverStyleSuffix = ", high quality, aesthetic, 3:4 aspect ratio, xiaohongshu style"
)

// LLMClient is an interface for interacting with a generative AI service.
// This interface is defined from the service layer's perspective (consumer-first).
type LLMClient interface {
	// GenerateJSON sends a prompt, optionally with a base64 image, and decodes
	// the JSON reply into out.
	GenerateJSON(ctx context.Context, prompt, imageBase64 string, out any) error
	// GenerateImage returns a base64 encoded image for prompt.
	GenerateImage(ctx context.Context, prompt, size string) (string, error)
}

// RewrittenVersion is one rewrite of a note in a particular style.
type RewrittenVersion struct {
	ID      int      `json:"id"`
	Style   string   `json:"style"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// AuditIssue is a single flagged phrase.
type AuditIssue struct {
	Word       string `json:"word"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// AuditResult is the outcome of a compliance check.
type AuditResult struct {
	HasSensitiveWords bool         `json:"hasSensitiveWords"`
	Score             int          `json:"score"` // 0-100, 100 is safe
	HighlightedText   string       `json:"highlightedText"`
	Issues            []AuditIssue `json:"issues"`
}

// ContentService drafts, rewrites and checks posts with the AI service.
type ContentService interface {
	// ParseContent extracts title, content and tags from raw text or a screenshot.
	ParseContent(ctx context.Context, text, imageBase64 string) (notes.NoteContent, error)
	// GenerateVariations rewrites a note count times in different styles.
	GenerateVariations(ctx context.Context, original notes.NoteContent, count int) ([]RewrittenVersion, error)
	// AuditContent checks text against advertising and platform rules.
	AuditContent(ctx context.Context, text string) (AuditResult, error)
	// FindViralTopics drafts notes likely to trend for keyword.
	FindViralTopics(ctx context.Context, keyword string) ([]notes.NoteContent, error)
	// GenerateBatch drafts BatchSize notes on topic avoiding excludeAngles.
	GenerateBatch(ctx context.Context, topic string, excludeAngles []string) ([]notes.NoteContent, error)
	// GenerateCover returns a base64 cover image for prompt.
	GenerateCover(ctx context.Context, prompt string) (string, error)
}

// contentService implements ContentService.
type contentService struct {
	llm       LLMClient
	imageSize string
}

// NewContentService creates a new ContentService.
func NewContentService(llm LLMClient, imageSize string) ContentService {
	return &contentService{
		llm:       llm,
		imageSize: imageSize,
	}
}

func (s *contentService) ParseContent(ctx context.Context, text, imageBase64 string) (notes.NoteContent, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text = strings.TrimSpace(text)
	imageBase64 = stripDataURL(imageBase64)
	if text == "" && imageBase64 == "" {
		logger.WarnContext(ctx, "empty parse request")
		return notes.NoteContent{}, &ValidationError{Field: "text", Message: "text or image is required"}
	}

	prompt := `Analyze the social media note below (Xiaohongshu style) and extract its title, main content and tags.
Respond with a JSON object {"title": string, "content": string, "tags": [string]}.`
	if imageBase64 == "" {
		prompt += "\n\nContent to parse:\n" + text
	}

	var out notes.NoteContent
	if err := s.llm.GenerateJSON(ctx, prompt, imageBase64, &out); err != nil {
		logger.ErrorContext(ctx, "failed to parse content", "error", err)
		return notes.NoteContent{}, externalError(err, "failed to parse content")
	}

	logger.InfoContext(ctx, "content parsed", "from_image", imageBase64 != "", "tags", len(out.Tags))
	return normalizeNote(out), nil
}

func (s *contentService) GenerateVariations(ctx context.Context, original notes.NoteContent, count int) ([]RewrittenVersion, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(original.Title) == "" && strings.TrimSpace(original.Content) == "" {
		return nil, &ValidationError{Field: "note", Message: "title or content is required"}
	}
	if count == 0 {
		count = DefaultVariationCount
	}
	if count < 1 || count > MaxVariationCount {
		return nil, &ValidationError{Field: "count", Message: fmt.Sprintf("must be between 1 and %d", MaxVariationCount)}
	}

	prompt := fmt.Sprintf(`You are a senior Xiaohongshu (RedNote) operations editor.
Rewrite the note below into %d distinct versions. Rotate through these strategies:
1. emotional hook, empathetic
2. data-driven, educational
3. curiosity gap
Use fitting emojis, airy line spacing and trending keywords.

Original title: %s
Original content: %s

Respond with a JSON object {"versions": [{"id": int, "style": string, "title": string, "content": string, "tags": [string]}]}.`,
		count, original.Title, original.Content)

	var out struct {
		Versions []RewrittenVersion `json:"versions"`
	}
	if err := s.llm.GenerateJSON(ctx, prompt, "", &out); err != nil {
		logger.ErrorContext(ctx, "failed to generate variations", "error", err)
		return nil, externalError(err, "failed to generate variations")
	}

	for i := range out.Versions {
		out.Versions[i].Tags = normalizeTags(out.Versions[i].Tags)
		if out.Versions[i].ID == 0 {
			out.Versions[i].ID = i + 1
		}
	}

	logger.InfoContext(ctx, "variations generated", "requested", count, "returned", len(out.Versions))
	return out.Versions, nil
}

func (s *contentService) AuditContent(ctx context.Context, text string) (AuditResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(text) == "" {
		return AuditResult{}, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	prompt := `Audit the text below against the PRC Advertising Law and Xiaohongshu community rules. Flag:
- absolute claims (best, first, No.1, 最, 第一, 国家级)
- medical or therapeutic claims (cure, treatment, 治疗, 疗效)
- false promises
"highlightedText" is the original text with each flagged word wrapped in <span class="text-red-500 font-bold">...</span>.
Respond with a JSON object {"hasSensitiveWords": bool, "score": int 0-100 where 100 is safe, "highlightedText": string, "issues": [{"word": string, "reason": string, "suggestion": string}]}.

Text to audit:
` + text

	var out AuditResult
	if err := s.llm.GenerateJSON(ctx, prompt, "", &out); err != nil {
		logger.ErrorContext(ctx, "failed to audit content", "error", err)
		return AuditResult{}, externalError(err, "failed to audit content")
	}

	out.Score = min(max(out.Score, 0), 100)
	if len(out.Issues) > 0 {
		out.HasSensitiveWords = true
	}
	if out.Issues == nil {
		out.Issues = []AuditIssue{}
	}

	logger.InfoContext(ctx, "content audited", "score", out.Score, "issues", len(out.Issues))
	return out, nil
}

func (s *contentService) FindViralTopics(ctx context.Context, keyword string) ([]notes.NoteContent, error) {
	logger := contextutil.LoggerFromContext(ctx)

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &ValidationError{Field: "keyword", Message: "cannot be empty"}
	}

	prompt := fmt.Sprintf(`Based on the keyword %q, draft 3 Xiaohongshu notes that would likely go viral right now.
Lean on current trends, seasonal angles and popular formats.
Respond with a JSON object {"notes": [{"title": string, "content": string, "tags": [string]}]}.`, keyword)

	list, err := s.generateNotes(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to find viral topics", "keyword", keyword, "error", err)
		return nil, externalError(err, "failed to find viral topics")
	}

	logger.InfoContext(ctx, "viral topics generated", "keyword", keyword, "notes", len(list))
	return list, nil
}

func (s *contentService) GenerateBatch(ctx context.Context, topic string, excludeAngles []string) ([]notes.NoteContent, error) {
	logger := contextutil.LoggerFromContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, &ValidationError{Field: "topic", Message: "cannot be empty"}
	}
	if excludeAngles == nil {
		excludeAngles = []string{}
	}
	excluded, err := json.Marshal(excludeAngles)
	if err != nil {
		return nil, WrapError(err, "failed to encode excluded angles")
	}

	prompt := fmt.Sprintf(`Act as a Xiaohongshu (RedNote) content director with ten years of experience.
Topic: %s

1. Work out the best performing angles for this topic.
2. Write %d complete, clearly distinct notes.
3. Do not reuse any of these angles or titles: %s
4. End every note with a lead magnet: invite readers to comment or send a private message to receive a free checklist, guide or PDF on the topic.

Tone: authentic, experienced, helpful. Catchy titles, emoji-rich bodies, relevant hashtags.
Each note needs a vivid, concrete imagePrompt for its cover photo.
Respond with a JSON object {"notes": [{"title": string, "content": string, "tags": [string], "imagePrompt": string}]}.`,
		topic, BatchSize, excluded)

	list, err := s.generateNotes(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate batch", "topic", topic, "error", err)
		return nil, externalError(err, "failed to generate batch")
	}

	logger.InfoContext(ctx, "batch generated", "topic", topic, "notes", len(list), "excluded", len(excludeAngles))
	return list, nil
}

func (s *contentService) GenerateCover(ctx context.Context, prompt string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}

	img, err := s.llm.GenerateImage(ctx, prompt+coverStyleSuffix, s.imageSize)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate cover", "error", err)
		return "", externalError(err, "failed to generate cover")
	}

	logger.InfoContext(ctx, "cover generated", "bytes", len(img))
	return img, nil
}

func (s *contentService) generateNotes(ctx context.Context, prompt string) ([]notes.NoteContent, error) {
	var out struct {
		Notes []notes.NoteContent `json:"notes"`
	}
	if err := s.llm.GenerateJSON(ctx, prompt, "", &out); err != nil {
		return nil, err
	}

	list := make([]notes.NoteContent, 0, len(out.Notes))
	for _, n := range out.Notes {
		list = append(list, normalizeNote(n))
	}
	return list, nil
}

func normalizeNote(n notes.NoteContent) notes.NoteContent {
	n.Title = strings.TrimSpace(n.Title)
	n.Tags = normalizeTags(n.Tags)
	return n
}

// normalizeTags drops leading '#' and blank tags, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "#＃"))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stripDataURL accepts either raw base64 or a data: URL and returns the base64 part.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}
