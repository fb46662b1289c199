package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Storage drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Backend is a Medium that can also report how full it is.
type Backend interface {
	Medium
	Usage(ctx context.Context) (int64, error)
	Quota() int64
}

var (
	_ Backend = (*KVRepo)(nil)
	_ Backend = (*MemoryMedium)(nil)
)

// Open creates the Backend for driver. The returned close function releases
// any underlying resources and is never nil.
func Open(driver, dbPath string, quota int64) (Backend, func() error, error) {
	switch driver {
	case DriverMemory:
		slog.Info("Using in-memory storage", "quota_bytes", quota)
		return NewMemoryMedium(quota), func() error { return nil }, nil
	case DriverSQLite:
		db, err := New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("Database initialized", "path", dbPath, "quota_bytes", quota)
		return NewKVRepo(db, quota), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
