package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rednote-ops/internal/config"
	"rednote-ops/internal/notes"
	"rednote-ops/internal/service"
	"rednote-ops/internal/storage"
)

// app holds what the subcommands share. A nil library is opened from the
// environment configuration before the first subcommand runs.
type app struct {
	library service.LibraryService
	closeFn func() error
	now     func() time.Time
	verbose bool
}

func (a *app) open() error {
	if a.now == nil {
		a.now = time.Now
	}
	if a.library != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	if cfg.StorageDriver == storage.DriverMemory {
		slog.Warn("memory storage is not shared with the API server, the library will be empty")
	}
	backend, closeFn, err := storage.Open(cfg.StorageDriver, cfg.DBPath, cfg.StorageQuotaBytes)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	a.library = service.NewLibraryService(notes.NewStore(backend, notes.WithKey(cfg.StorageKey)))
	a.closeFn = closeFn
	return nil
}

func (a *app) close() {
	if a.closeFn != nil {
		_ = a.closeFn()
		a.closeFn = nil
	}
}

// newRootCmd builds the rednotectl command tree.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rednotectl",
		Short: "Inspect and maintain the saved note library",
		Long: `rednotectl works on the same saved-note library as the API server.
It reads DB_PATH, STORAGE_DRIVER, STORAGE_QUOTA_BYTES and STORAGE_KEY from the
environment or a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newListCmd(a),
		newStatsCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newExportCmd(a),
	)
	return rootCmd
}
