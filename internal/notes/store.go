package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rednote-ops/internal/contextutil"
	"rednote-ops/internal/storage"
)

// DefaultKey is the medium key the collection is stored under.
// Change the suffix when the record shape changes.
const DefaultKey = "rednote_ops_saved_v1"

// ErrWriteFailed is returned by DeleteMany when the filtered collection could
// not be written. The collection on the medium is unchanged.
var ErrWriteFailed = errors.New("notes: write failed")

// Store keeps the saved-note collection as a single JSON array under one key
// of a capacity-limited medium, newest first.
//
// Saves never fail on a full medium while there is still something to shed:
// the store walks its degradation ladder, writing after every step, until a
// write fits.
type Store struct {
	mu            sync.Mutex
	medium        storage.Medium
	key           string
	ladder        []Shrinker
	discriminator func(NoteContent) string
	now           func() time.Time
	newID         func() string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLadder replaces DefaultLadder.
func WithLadder(ladder ...Shrinker) Option {
	return func(s *Store) { s.ladder = ladder }
}

// WithDiscriminator sets the function deciding whether two notes are the
// same note. Defaults to comparing titles.
func WithDiscriminator(fn func(NoteContent) string) Option {
	return func(s *Store) { s.discriminator = fn }
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over medium.
func NewStore(medium storage.Medium, opts ...Option) *Store {
	s := &Store{
		medium:        medium,
		key:           DefaultKey,
		ladder:        DefaultLadder(),
		discriminator: func(n NoteContent) string { return n.Title },
		now:           time.Now,
		newID:         newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the medium key the collection lives under.
func (s *Store) Key() string {
	return s.key
}

// ListAll returns every saved note, newest first.
// A missing or unreadable collection yields an empty slice.
func (s *Store) ListAll(ctx context.Context) []SavedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, s.medium)
}

// Save stores note with an optional base64 cover image and reports whether
// it was persisted. A note whose discriminator already exists is treated as
// saved without writing anything.
//
// When the medium is full, Save degrades the collection one ladder step at a
// time and returns true as soon as a write succeeds. false means nothing was
// written and the previous collection is still in place.
func (s *Store) Save(ctx context.Context, note NoteContent, coverImage string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saved bool
	err := s.update(ctx, func(m storage.Medium) error {
		saved = s.save(ctx, m, note, coverImage)
		return nil
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to commit saved note", "title", note.Title, "error", err)
		return false
	}
	return saved
}

func (s *Store) save(ctx context.Context, m storage.Medium, note NoteContent, coverImage string) bool {
	logger := contextutil.LoggerFromContext(ctx)
	existing := s.load(ctx, m)

	key := s.discriminator(note)
	for _, n := range existing {
		if s.discriminator(n.NoteContent) == key {
			logger.DebugContext(ctx, "note already saved", "title", note.Title, "id", n.ID)
			return true
		}
	}

	now := s.now()
	candidate := Candidate{
		New: SavedNote{
			NoteContent:      note,
			ID:               s.newID(),
			CreatedAt:        now.UnixMilli(),
			CoverImageBase64: coverImage,
		},
		History: existing,
	}

	err := s.write(ctx, m, candidate.Notes())
	if err == nil {
		logger.InfoContext(ctx, "note saved", "id", candidate.New.ID, "notes", len(existing)+1)
		return true
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		logger.ErrorContext(ctx, "failed to save note", "error", err)
		return false
	}

	logger.WarnContext(ctx, "storage quota exceeded, degrading saved notes", "notes", len(existing))
	attempts := 1
	for _, rung := range s.ladder {
		for {
			next, ok := rung.Shrink(candidate)
			if !ok {
				break
			}
			candidate = next
			attempts++

			err := s.write(ctx, m, candidate.Notes())
			if err == nil {
				logger.InfoContext(ctx, "note saved after degrading",
					"id", candidate.New.ID,
					"step", rung.Name(),
					"attempts", attempts,
					"notes", len(candidate.History)+1,
					"dropped", len(existing)-len(candidate.History),
					"cover_kept", candidate.New.HasCover(),
				)
				return true
			}
			if !errors.Is(err, storage.ErrQuotaExceeded) {
				logger.ErrorContext(ctx, "failed to save note", "step", rung.Name(), "error", err)
				return false
			}
		}
	}

	logger.ErrorContext(ctx, "storage exhausted, note not saved", "title", note.Title, "attempts", attempts)
	return false
}

// DeleteMany removes every note whose ID is in ids and returns what remains.
// If the write fails, the unchanged collection is returned together with an
// error wrapping ErrWriteFailed.
func (s *Store) DeleteMany(ctx context.Context, ids []string) ([]SavedNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var existing, remaining []SavedNote
	err := s.update(ctx, func(m storage.Medium) error {
		existing = s.load(ctx, m)
		remaining = make([]SavedNote, 0, len(existing))
		for _, n := range existing {
			if _, ok := drop[n.ID]; !ok {
				remaining = append(remaining, n)
			}
		}
		if len(remaining) == len(existing) {
			return nil
		}
		return s.write(ctx, m, remaining)
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete notes", "ids", len(ids), "error", err)
		if existing == nil {
			existing = s.load(ctx, s.medium)
		}
		return existing, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if len(remaining) == len(existing) {
		return existing, nil
	}
	return remaining, nil
}

// ClearAll removes the whole collection. Calling it on an empty store is a
// no-op.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.medium.Remove(ctx, s.key); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to clear notes", "error", err)
	}
}

// Replace overwrites the collection with notes as given.
func (s *Store) Replace(ctx context.Context, notes []SavedNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, s.medium, notes)
}

// update runs fn as one read-modify-write against the medium. Media shared
// with other processes run it inside their own transaction.
func (s *Store) update(ctx context.Context, fn func(m storage.Medium) error) error {
	if tx, ok := s.medium.(storage.Transactor); ok {
		return tx.Update(ctx, fn)
	}
	return fn(s.medium)
}

func (s *Store) load(ctx context.Context, m storage.Medium) []SavedNote {
	logger := contextutil.LoggerFromContext(ctx)

	raw, ok, err := m.Get(ctx, s.key)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read saved notes", "key", s.key, "error", err)
		return []SavedNote{}
	}
	if !ok {
		return []SavedNote{}
	}

	var notes []SavedNote
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		logger.WarnContext(ctx, "saved notes are corrupt, treating as empty", "key", s.key, "error", err)
		return []SavedNote{}
	}
	if notes == nil {
		return []SavedNote{}
	}
	return notes
}

func (s *Store) write(ctx context.Context, m storage.Medium, notes []SavedNote) error {
	if notes == nil {
		notes = []SavedNote{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return m.Set(ctx, s.key, string(data))
}

// newID returns a time-ordered UUID, so IDs sort by creation and stay unique
// across saves in the same millisecond.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
