package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
	"rednote-ops/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// replyJSON makes a GenerateJSON mock decode raw into the caller's target.
func replyJSON(raw string) func(context.Context, string, string, any) error {
	return func(_ context.Context, _, _ string, out any) error {
		return json.Unmarshal([]byte(raw), out)
	}
}

func TestContentService_ParseContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		text      string
		image     string
		mockSetup func(*mocks.MockLLMClient)
		want      notes.NoteContent
		wantErr   bool
		checkErr  func(error) bool
	}{
		{
			name: "text input",
			text: "  秋冬护肤心得 #护肤  ",
			mockSetup: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
					DoAndReturn(func(_ context.Context, prompt, _ string, out any) error {
						if !strings.Contains(prompt, "秋冬护肤心得") {
							t.Errorf("prompt does not include the text to parse")
						}
						return json.Unmarshal([]byte(`{"title":" 秋冬护肤 ","content":"c","tags":["#护肤"," ","干皮"]}`), out)
					})
			},
			want: notes.NoteContent{Title: "秋冬护肤", Content: "c", Tags: []string{"护肤", "干皮"}},
		},
		{
			name:  "image input strips data URL prefix",
			image: "data:image/png;base64,aGVsbG8=",
			mockSetup: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					GenerateJSON(gomock.Any(), gomock.Any(), "aGVsbG8=", gomock.Any()).
					DoAndReturn(replyJSON(`{"title":"t","content":"c","tags":[]}`))
			},
			want: notes.NoteContent{Title: "t", Content: "c", Tags: []string{}},
		},
		{
			name:      "empty input",
			mockSetup: func(m *mocks.MockLLMClient) {},
			wantErr:   true,
			checkErr: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v)
			},
		},
		{
			name: "LLM failure",
			text: "hello",
			mockSetup: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			wantErr: true,
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrExternalService)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := mocks.NewMockLLMClient(ctrl)
			tt.mockSetup(mockLLM)

			svc := service.NewContentService(mockLLM, "")
			got, err := svc.ParseContent(context.Background(), tt.text, tt.image)

			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseContent() expected error, got nil")
				}
				if tt.checkErr != nil && !tt.checkErr(err) {
					t.Errorf("ParseContent() error = %v, unexpected type", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContent() unexpected error: %v", err)
			}
			if got.Title != tt.want.Title || got.Content != tt.want.Content || strings.Join(got.Tags, ",") != strings.Join(tt.want.Tags, ",") {
				t.Errorf("ParseContent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContentService_GenerateVariations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	original := notes.NoteContent{Title: "t", Content: "c"}

	tests := []struct {
		name      string
		count     int
		mockSetup func(*mocks.MockLLMClient)
		wantLen   int
		wantErr   bool
	}{
		{
			name:  "default count",
			count: 0,
			mockSetup: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
					DoAndReturn(func(_ context.Context, prompt, _ string, out any) error {
						if !strings.Contains(prompt, "into 3 distinct versions") {
							t.Errorf("prompt should ask for 3 versions")
						}
						return json.Unmarshal([]byte(`{"versions":[{"style":"a"},{"style":"b"},{"style":"c"}]}`), out)
					})
			},
			wantLen: 3,
		},
		{
			name:      "count too large",
			count:     service.MaxVariationCount + 1,
			mockSetup: func(m *mocks.MockLLMClient) {},
			wantErr:   true,
		},
		{
			name:      "negative count",
			count:     -1,
			mockSetup: func(m *mocks.MockLLMClient) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := mocks.NewMockLLMClient(ctrl)
			tt.mockSetup(mockLLM)

			svc := service.NewContentService(mockLLM, "")
			got, err := svc.GenerateVariations(context.Background(), original, tt.count)

			if tt.wantErr {
				if err == nil {
					t.Error("GenerateVariations() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateVariations() unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("GenerateVariations() len = %d, want %d", len(got), tt.wantLen)
			}
			for i, v := range got {
				if v.ID != i+1 {
					t.Errorf("version %d ID = %d, want %d", i, v.ID, i+1)
				}
			}
		})
	}
}

func TestContentService_AuditContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
		DoAndReturn(replyJSON(`{"hasSensitiveWords":false,"score":140,"highlightedText":"x","issues":[{"word":"最","reason":"absolute term","suggestion":"很"}]}`))

	svc := service.NewContentService(mockLLM, "")
	got, err := svc.AuditContent(context.Background(), "全网最好用")
	if err != nil {
		t.Fatalf("AuditContent() unexpected error: %v", err)
	}
	if got.Score != 100 {
		t.Errorf("AuditContent() score = %d, want clamped 100", got.Score)
	}
	if !got.HasSensitiveWords {
		t.Error("AuditContent() should report sensitive words when issues are present")
	}

	if _, err := svc.AuditContent(context.Background(), "   "); err == nil {
		t.Error("AuditContent() with blank text expected error")
	}
}

func TestContentService_GenerateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt, _ string, out any) error {
			if !strings.Contains(prompt, `["old angle"]`) {
				t.Errorf("prompt should list excluded angles")
			}
			return json.Unmarshal([]byte(`{"notes":[{"title":"a","content":"c","tags":["#x"],"imagePrompt":"p"},{"title":"b","content":"c","tags":[]}]}`), out)
		})

	svc := service.NewContentService(mockLLM, "")
	got, err := svc.GenerateBatch(context.Background(), "露营", []string{"old angle"})
	if err != nil {
		t.Fatalf("GenerateBatch() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GenerateBatch() len = %d, want 2", len(got))
	}
	if got[0].ImagePrompt != "p" || got[0].Tags[0] != "x" {
		t.Errorf("GenerateBatch()[0] = %+v", got[0])
	}

	if _, err := svc.GenerateBatch(context.Background(), "", nil); err == nil {
		t.Error("GenerateBatch() with empty topic expected error")
	}
}

func TestContentService_GenerateBatch_NoExclusions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt, _ string, out any) error {
			if !strings.Contains(prompt, "angles or titles: []") {
				t.Errorf("prompt should list an empty exclusion array, got %q", prompt)
			}
			return json.Unmarshal([]byte(`{"notes":[{"title":"a","content":"c","tags":[]}]}`), out)
		})

	svc := service.NewContentService(mockLLM, "")
	got, err := svc.GenerateBatch(context.Background(), "露营", nil)
	if err != nil {
		t.Fatalf("GenerateBatch() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("GenerateBatch() len = %d, want 1", len(got))
	}
}

func TestContentService_FindViralTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), "", gomock.Any()).
		Return(errors.New("rate limited"))

	svc := service.NewContentService(mockLLM, "")
	_, err := svc.FindViralTopics(context.Background(), "咖啡")
	if !errors.Is(err, service.ErrExternalService) {
		t.Errorf("FindViralTopics() error = %v, want ErrExternalService", err)
	}
}

func TestContentService_GenerateCover(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any(), "1024x1536").
		DoAndReturn(func(_ context.Context, prompt, _ string) (string, error) {
			if !strings.HasPrefix(prompt, "a cosy desk") || !strings.Contains(prompt, "3:4 aspect ratio") {
				t.Errorf("unexpected image prompt %q", prompt)
			}
			return "aW1n", nil
		})

	svc := service.NewContentService(mockLLM, "1024x1536")
	got, err := svc.GenerateCover(context.Background(), "a cosy desk")
	if err != nil {
		t.Fatalf("GenerateCover() unexpected error: %v", err)
	}
	if got != "aW1n" {
		t.Errorf("GenerateCover() = %q, want %q", got, "aW1n")
	}

	if _, err := svc.GenerateCover(context.Background(), ""); err == nil {
		t.Error("GenerateCover() with empty prompt expected error")
	}
}
