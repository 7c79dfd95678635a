package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fiscaladmin/gam-status/internal/model"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Record collections and audit log",
		Up: func(tx *sql.Tx) error {
			for _, kind := range model.Kinds() {
				query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					status TEXT,
					fields TEXT NOT NULL DEFAULT '{}',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`, kind.Collection()) //nolint:gosec // collection names come from the catalog
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to create collection %s: %w", kind.Collection(), err)
				}
			}

			_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS audit_log (
				id TEXT PRIMARY KEY,
				entity_type TEXT NOT NULL,
				entity_id TEXT NOT NULL,
				from_status TEXT NOT NULL,
				to_status TEXT NOT NULL,
				triggered_by TEXT NOT NULL,
				reason TEXT,
				timestamp TEXT NOT NULL
			)`)
			if err != nil {
				return fmt.Errorf("failed to create audit_log: %w", err)
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index audit log by record",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_audit_log_record
				ON audit_log(entity_type, entity_id)`)
			return err
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= version {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		// PRAGMA doesn't accept bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
