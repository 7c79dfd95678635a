package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/fiscaladmin/gam-status/internal/engine"
	"github.com/fiscaladmin/gam-status/internal/model"
	"github.com/fiscaladmin/gam-status/internal/registry"
	"github.com/fiscaladmin/gam-status/internal/storage"
)

// absentStatusArg is what operators type for "the record has no status yet".
const absentStatusArg = "-"

// openStore opens the configured database and brings its schema up to date.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "gamstatus", "gamstatus.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// newManager wires the engine against the store acting as both record store
// and audit sink.
func newManager(store *storage.SQLiteStore) *engine.Manager {
	return engine.New(registry.Default(), store, store)
}

func parseKindArg(arg string) (model.EntityKind, error) {
	kind, err := model.KindFromName(arg)
	if err != nil {
		return "", fmt.Errorf("%w (valid kinds: %v)", err, model.Kinds())
	}
	return kind, nil
}

func parseStatusArg(arg string) (model.Status, error) {
	status, err := model.StatusFromCode(arg)
	if err != nil {
		return "", fmt.Errorf("%w (see 'gamstatus catalog' for valid codes)", err)
	}
	return status, nil
}
