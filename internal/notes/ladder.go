package notes

import "slices"

// Candidate is the collection a degraded save attempts to write:
// the note being saved followed by the (possibly reduced) history.
type Candidate struct {
	New     SavedNote
	History []SavedNote // newest first
}

// Notes returns the collection in stored order.
func (c Candidate) Notes() []SavedNote {
	out := make([]SavedNote, 0, len(c.History)+1)
	out = append(out, c.New)
	return append(out, c.History...)
}

// Shrinker is one rung of the degradation ladder.
// Shrink returns a smaller candidate and true, or false once it has nothing
// left to shed. It must not modify the candidate it is given, and it must
// eventually return false.
type Shrinker interface {
	Name() string
	Shrink(c Candidate) (Candidate, bool)
}

// DefaultLadder sheds old images one at a time, then old records one at a
// time, and finally the new note's own image.
func DefaultLadder() []Shrinker {
	return []Shrinker{
		StripImages{Batch: 1},
		DropOldest{Batch: 1},
		StripNewImage{},
	}
}

// StripImages removes cover images from history, oldest first.
type StripImages struct {
	Batch int // images stripped per step, minimum 1
}

func (StripImages) Name() string { return "strip_images" }

func (s StripImages) Shrink(c Candidate) (Candidate, bool) {
	n := max(s.Batch, 1)
	history := slices.Clone(c.History)
	stripped := 0
	for i := len(history) - 1; i >= 0 && stripped < n; i-- {
		if history[i].HasCover() {
			history[i].CoverImageBase64 = ""
			stripped++
		}
	}
	if stripped == 0 {
		return c, false
	}
	c.History = history
	return c, true
}

// DropOldest discards whole records from the old end of history.
type DropOldest struct {
	Batch int // records dropped per step, minimum 1
}

func (DropOldest) Name() string { return "drop_oldest" }

func (d DropOldest) Shrink(c Candidate) (Candidate, bool) {
	if len(c.History) == 0 {
		return c, false
	}
	n := min(max(d.Batch, 1), len(c.History))
	c.History = slices.Clip(c.History[:len(c.History)-n])
	return c, true
}

// StripNewImage saves the new note as text only.
type StripNewImage struct{}

func (StripNewImage) Name() string { return "strip_new_image" }

func (StripNewImage) Shrink(c Candidate) (Candidate, bool) {
	if !c.New.HasCover() {
		return c, false
	}
	c.New.CoverImageBase64 = ""
	return c, true
}
