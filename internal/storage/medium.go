package storage

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by Set when storing the value would push the
// medium past its capacity. The previous value under the key is left intact.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Medium is a flat string key-value store with a fixed capacity.
// Capacity exhaustion is only reported by a failing Set; there is no way to
// ask how much room is left.
type Medium interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value under key. Returns an error wrapping
	// ErrQuotaExceeded when the medium is full.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// entrySize is the number of bytes a key/value pair counts against a quota.
func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// Transactor is implemented by media that other processes may write at the
// same time. Update runs fn against a view of the medium that holds the write
// lock until fn returns; the changes are committed when fn returns nil and
// discarded otherwise. fn must only use the medium it is given.
type Transactor interface {
	Update(ctx context.Context, fn func(m Medium) error) error
}
