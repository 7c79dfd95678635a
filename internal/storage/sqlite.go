// Package storage provides the SQLite persistence layer backing the record
// store and audit sink interfaces.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fiscaladmin/gam-status/internal/common"
	"github.com/fiscaladmin/gam-status/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.RecordStore and service.AuditSink. Each
// entity kind's collection is one table holding the record id, the status
// column the conditional write keys on, and the remaining fields as JSON.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load fetches one record from the named collection. Returns an error
// wrapping common.ErrRecordNotFound when no row exists.
func (s *SQLiteStore) Load(ctx context.Context, collection, recordID string) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}

	var status sql.NullString
	var fieldsJSON string
	query := fmt.Sprintf(`SELECT status, fields FROM %s WHERE id = ?`, collection) //nolint:gosec // collection is allowlisted
	err := s.db.QueryRowContext(ctx, query, recordID).Scan(&status, &fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, recordID, common.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", collection, recordID, err)
	}

	fields := make(map[string]string)
	if fieldsJSON != "" {
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields of %s/%s: %w", collection, recordID, err)
		}
	}
	if status.Valid && status.String != "" {
		fields[model.StatusField] = status.String
	}

	return &model.Record{ID: recordID, Fields: fields}, nil
}

// Save persists the full record, conditioned on the status column still
// holding the value observed at load time. A nil observed status matches
// only rows whose status is still NULL or empty. A conditional miss returns
// an error wrapping common.ErrStaleStatus and leaves the row untouched.
func (s *SQLiteStore) Save(ctx context.Context, collection string, rec *model.Record, observed *model.Status) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCollection(collection); err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: rec", ErrNilParameter)
	}
	if err := validateString(rec.ID, "rec.ID"); err != nil {
		return err
	}

	status, fieldsJSON, err := splitStatus(rec)
	if err != nil {
		return err
	}

	var result sql.Result
	if observed == nil {
		query := fmt.Sprintf(`
			UPDATE %s SET status = ?, fields = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND (status IS NULL OR status = '')`, collection) //nolint:gosec // collection is allowlisted
		result, err = s.db.ExecContext(ctx, query, status, fieldsJSON, rec.ID)
	} else {
		query := fmt.Sprintf(`
			UPDATE %s SET status = ?, fields = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`, collection) //nolint:gosec // collection is allowlisted
		result, err = s.db.ExecContext(ctx, query, status, fieldsJSON, rec.ID, observed.Code())
	}
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", collection, rec.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", collection, rec.ID, err)
	}
	if affected == 0 {
		// Either the row is gone or its status no longer matches.
		var exists bool
		query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, collection) //nolint:gosec // collection is allowlisted
		if err := s.db.QueryRowContext(ctx, query, rec.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to save %s/%s: %w", collection, rec.ID, err)
		}
		if !exists {
			return fmt.Errorf("%s/%s: %w", collection, rec.ID, common.ErrRecordNotFound)
		}
		return fmt.Errorf("%s/%s: %w", collection, rec.ID, common.ErrStaleStatus)
	}

	return nil
}

// Insert creates a new record in the named collection. Records normally
// enter the pipeline without a status; their first transition assigns one of
// the kind's initial statuses.
func (s *SQLiteStore) Insert(ctx context.Context, collection string, rec *model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCollection(collection); err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: rec", ErrNilParameter)
	}
	if err := validateString(rec.ID, "rec.ID"); err != nil {
		return err
	}

	status, fieldsJSON, err := splitStatus(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, status, fields) VALUES (?, ?, ?)`, collection) //nolint:gosec // collection is allowlisted
	if _, err := s.db.ExecContext(ctx, query, rec.ID, status, fieldsJSON); err != nil {
		return fmt.Errorf("failed to insert %s/%s: %w", collection, rec.ID, err)
	}

	return nil
}

// splitStatus separates the status field from the rest of the record fields,
// returning the status (NULL when absent) and the remaining fields as JSON.
func splitStatus(rec *model.Record) (sql.NullString, string, error) {
	var status sql.NullString
	rest := make(map[string]string, len(rec.Fields))
	for k, v := range rec.Fields {
		if k == model.StatusField {
			if v != "" {
				status = sql.NullString{String: v, Valid: true}
			}
			continue
		}
		rest[k] = v
	}

	fieldsJSON, err := json.Marshal(rest)
	if err != nil {
		return status, "", fmt.Errorf("failed to encode fields of %s: %w", rec.ID, err)
	}
	return status, string(fieldsJSON), nil
}
