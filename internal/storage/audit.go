package storage

import (
	"context"
	"fmt"

	"github.com/fiscaladmin/gam-status/internal/model"
)

// Append writes one audit entry to the audit_log table. Append-only: nothing
// in this package updates or deletes audit rows.
func (s *SQLiteStore) Append(ctx context.Context, entry model.AuditEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(entry.ID, "entry.ID"); err != nil {
		return err
	}
	if err := validateString(entry.EntityID, "entry.EntityID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (
			id, entity_type, entity_id, from_status, to_status,
			triggered_by, reason, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.EntityKind,
		entry.EntityID,
		entry.FromStatus,
		entry.ToStatus,
		entry.Actor,
		entry.Reason,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry %s: %w", entry.ID, err)
	}

	return nil
}

// AuditTrail returns the audit entries for one record in transition order.
// Insertion order is authoritative: the engine holds the per-record lock
// through the append, so rowid reflects true chronology even where stored
// timestamp strings would not sort that way. Operator tooling only; the
// engine itself never reads entries back.
func (s *SQLiteStore) AuditTrail(ctx context.Context, kind model.EntityKind, recordID string) ([]model.AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, from_status, to_status,
		       triggered_by, reason, timestamp
		FROM audit_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY rowid`,
		kind.String(), recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail for %s %s: %w", kind, recordID, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.EntityKind, &e.EntityID, &e.FromStatus,
			&e.ToStatus, &e.Actor, &e.Reason, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit trail: %w", err)
	}

	return entries, nil
}
