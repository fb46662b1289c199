// Package export writes saved notes into a downloadable ZIP archive.
package export

import (
	"archive/zip"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"rednote-ops/internal/notes"
)

const maxFolderRunes = 20

// FolderName returns the archive root folder for an export made at now.
func FolderName(now time.Time) string {
	return "RedNote_Batch_" + now.Format("2006-01-02")
}

// WriteZip writes one folder per note under FolderName(now), each holding
// content.txt and, when the note still has one, cover.png.
// Notes whose titles sanitize to the same folder name get a numeric suffix.
func WriteZip(w io.Writer, list []notes.SavedNote, now time.Time) error {
	zw := zip.NewWriter(w)
	root := FolderName(now)
	seen := make(map[string]int, len(list))

	for _, n := range list {
		folder := SafeTitle(n.Title)
		seen[folder]++
		if c := seen[folder]; c > 1 {
			folder = fmt.Sprintf("%s_%d", folder, c)
		}
		dir := path.Join(root, folder)

		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     path.Join(dir, "content.txt"),
			Method:   zip.Deflate,
			Modified: n.Created(),
		})
		if err != nil {
			return fmt.Errorf("failed to create content entry: %w", err)
		}
		if _, err := io.WriteString(f, ContentText(n.NoteContent)); err != nil {
			return fmt.Errorf("failed to write content entry: %w", err)
		}

		if !n.HasCover() {
			continue
		}
		img, err := base64.StdEncoding.DecodeString(n.CoverImageBase64)
		if err != nil {
			return fmt.Errorf("note %s: invalid cover image: %w", n.ID, err)
		}
		f, err = zw.CreateHeader(&zip.FileHeader{
			Name:     path.Join(dir, "cover.png"),
			Method:   zip.Store,
			Modified: n.Created(),
		})
		if err != nil {
			return fmt.Errorf("failed to create cover entry: %w", err)
		}
		if _, err := f.Write(img); err != nil {
			return fmt.Errorf("failed to write cover entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// ContentText renders a note as the plain-text file stored in exports.
func ContentText(n notes.NoteContent) string {
	tags := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, "#"+t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TITLE: %s\n\n", n.Title)
	fmt.Fprintf(&b, "CONTENT:\n%s\n\n", n.Content)
	fmt.Fprintf(&b, "TAGS:\n%s\n\n", strings.Join(tags, " "))
	fmt.Fprintf(&b, "PROMPT:\n%s", n.ImagePrompt)
	return b.String()
}

// SafeTitle maps a title to a folder name: ASCII letters, digits and CJK
// ideographs are kept, everything else becomes '_', and the result is capped
// at 20 characters.
func SafeTitle(title string) string {
	var b strings.Builder
	count := 0
	for _, r := range title {
		if count == maxFolderRunes {
			break
		}
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		count++
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
