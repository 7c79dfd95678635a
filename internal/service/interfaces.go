// Package service defines the interfaces for the engine's external
// collaborators. Implementations are injected; the engine never reaches into
// ambient globals for its store or sink.
package service

import (
	"context"

	"github.com/fiscaladmin/gam-status/internal/model"
)

// RecordStore is the persistence contract for pipeline records. The engine
// holds no cached record state across calls; every transition loads fresh.
type RecordStore interface {
	// Load fetches one record from the named collection. A missing record
	// yields an error wrapping common.ErrRecordNotFound.
	Load(ctx context.Context, collection, recordID string) (*model.Record, error)

	// Save persists the full record, conditioned on the status field still
	// holding the value observed at load time (nil observed means the field
	// was absent or empty). A conditional-write miss yields an error
	// wrapping common.ErrStaleStatus and must leave the record unchanged.
	Save(ctx context.Context, collection string, rec *model.Record, observed *model.Status) error
}

// AuditSink receives immutable transition audit entries. Append-only; the
// engine never updates or reads back prior entries.
type AuditSink interface {
	Append(ctx context.Context, entry model.AuditEntry) error
}
