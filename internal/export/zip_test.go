package export

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"rednote-ops/internal/notes"
)

func TestSafeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Hello World", want: "Hello_World"},
		{title: "春日穿搭 OOTD!", want: "春日穿搭_OOTD_"},
		{title: "emoji ✨ here", want: "emoji___here"},
		{title: strings.Repeat("a", 30), want: strings.Repeat("a", 20)},
		{title: strings.Repeat("好", 25), want: strings.Repeat("好", 20)},
		{title: "", want: "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := SafeTitle(tt.title); got != tt.want {
				t.Errorf("SafeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestContentText(t *testing.T) {
	got := ContentText(notes.NoteContent{
		Title:       "T",
		Content:     "body",
		Tags:        []string{"a", "b"},
		ImagePrompt: "p",
	})
	want := "TITLE: T\n\nCONTENT:\nbody\n\nTAGS:\n#a #b\n\nPROMPT:\np"
	if got != want {
		t.Errorf("ContentText() = %q, want %q", got, want)
	}
}

func TestWriteZip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	list := []notes.SavedNote{
		{
			NoteContent:      notes.NoteContent{Title: "with cover", Content: "x"},
			ID:               "1",
			CreatedAt:        now.UnixMilli(),
			CoverImageBase64: "aGVsbG8=",
		},
		{
			NoteContent: notes.NoteContent{Title: "with cover", Content: "y"},
			ID:          "2",
			CreatedAt:   now.UnixMilli(),
		},
	}

	var buf bytes.Buffer
	if err := WriteZip(&buf, list, now); err != nil {
		t.Fatalf("WriteZip() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	files := make(map[string]string)
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%s) error = %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		files[f.Name] = string(data)
		names = append(names, f.Name)
	}
	sort.Strings(names)

	want := []string{
		"RedNote_Batch_2024-05-01/with_cover/content.txt",
		"RedNote_Batch_2024-05-01/with_cover/cover.png",
		"RedNote_Batch_2024-05-01/with_cover_2/content.txt",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("archive entries = %v, want %v", names, want)
	}
	if files[want[1]] != "hello" {
		t.Errorf("cover.png = %q, want decoded image bytes", files[want[1]])
	}
	if !strings.Contains(files[want[2]], "CONTENT:\ny") {
		t.Errorf("second content.txt = %q", files[want[2]])
	}
}

func TestWriteZip_InvalidCover(t *testing.T) {
	list := []notes.SavedNote{{
		NoteContent:      notes.NoteContent{Title: "bad"},
		ID:               "1",
		CoverImageBase64: "%%%not base64",
	}}

	if err := WriteZip(io.Discard, list, time.Now()); err == nil {
		t.Error("WriteZip() expected error for invalid cover, got nil")
	}
}
