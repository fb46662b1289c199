package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_medium.go -package=mocks rednote-ops/internal/storage Medium

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	_ Medium     = (*KVRepo)(nil)
	_ Transactor = (*KVRepo)(nil)
	_ Medium     = (*kvTx)(nil)
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// KVRepo is a SQLite-backed Medium.
// All keys and values together may not exceed quota bytes. A quota of zero
// or less disables the limit.
type KVRepo struct {
	db    *sql.DB
	quota int64
}

// NewKVRepo creates a new KVRepo.
func NewKVRepo(db *sql.DB, quota int64) *KVRepo {
	return &KVRepo{db: db, quota: quota}
}

// Get returns the value stored under key.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	return getKey(ctx, r.db, key)
}

// Set replaces the value under key.
// The quota check and the write run in one transaction, so a rejected write
// leaves the old value in place.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	return r.Update(ctx, func(m Medium) error {
		return m.Set(ctx, key, value)
	})
}

// Remove deletes key.
func (r *KVRepo) Remove(ctx context.Context, key string) error {
	return removeKey(ctx, r.db, key)
}

// Update runs fn inside one write transaction. The database is opened with
// immediate transactions, so a second process blocks (up to the busy
// timeout) instead of interleaving its own read-modify-write.
func (r *KVRepo) Update(ctx context.Context, fn func(m Medium) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&kvTx{tx: tx, quota: r.quota}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Usage returns the number of bytes currently counted against the quota.
func (r *KVRepo) Usage(ctx context.Context) (int64, error) {
	var used int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv",
	).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("failed to compute usage: %w", err)
	}
	return used, nil
}

// Quota returns the configured capacity in bytes.
func (r *KVRepo) Quota() int64 {
	return r.quota
}

// kvTx is the Medium handed to Update callbacks.
type kvTx struct {
	tx    *sql.Tx
	quota int64
}

func (t *kvTx) Get(ctx context.Context, key string) (string, bool, error) {
	return getKey(ctx, t.tx, key)
}

// Set checks the quota before writing, so a rejected Set leaves the
// transaction usable.
func (t *kvTx) Set(ctx context.Context, key, value string) error {
	if t.quota > 0 {
		var used int64
		err := t.tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
			 FROM kv WHERE key != ?`,
			key,
		).Scan(&used)
		if err != nil {
			return fmt.Errorf("failed to compute usage: %w", err)
		}
		if need := used + entrySize(key, value); need > t.quota {
			return fmt.Errorf("%w: need %d bytes, quota %d", ErrQuotaExceeded, need, t.quota)
		}
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

func (t *kvTx) Remove(ctx context.Context, key string) error {
	return removeKey(ctx, t.tx, key)
}

func getKey(ctx context.Context, q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key: %w", err)
	}
	return value, true, nil
}

func removeKey(ctx context.Context, q querier, key string) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}
