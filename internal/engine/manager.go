// Package engine orchestrates status transitions: it loads a record, asks
// the registry whether the requested move is legal, persists the new status
// and appends an audit entry as one logical outcome. Every status change in
// the pipeline is expected to route through this package; nothing should
// write a status field directly against the store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fiscaladmin/gam-status/internal/audit"
	"github.com/fiscaladmin/gam-status/internal/common"
	"github.com/fiscaladmin/gam-status/internal/model"
	"github.com/fiscaladmin/gam-status/internal/registry"
	"github.com/fiscaladmin/gam-status/internal/service"
)

// casAttempts bounds how often a transition re-runs load+validate after the
// store reports a conditional-write miss. Misses only happen when something
// writes the record out of band; under the per-record lock two engine callers
// can never race each other.
const casAttempts = 3

// Result reports the outcome of a successful transition.
type Result struct {
	Previous *model.Status // nil when the record had no status before
	New      model.Status
}

// Manager is the single entry point for status transitions. It owns the
// per-record mutual exclusion that makes same-record transitions
// linearizable; transitions on different records proceed independently.
type Manager struct {
	registry *registry.Registry
	store    service.RecordStore
	recorder *audit.Recorder
	mu       sync.Mutex
	locks    map[string]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a Manager using the given registry, record store and audit
// sink.
func New(reg *registry.Registry, store service.RecordStore, sink service.AuditSink) *Manager {
	return &Manager{
		registry: reg,
		store:    store,
		recorder: audit.NewRecorder(sink),
		locks:    make(map[string]*recordLock),
	}
}

// Transition moves the identified record to targetStatus. It loads the
// current state, validates the move against the registry, writes the new
// status conditioned on the status observed at load, and appends one audit
// entry. On success it returns the previous and new status.
//
// Failure modes: *RecordNotFoundError when the record does not exist,
// model.ErrUnknownStatus when the stored status code is not in the catalog,
// *InvalidTransitionError when the registry forbids the move (no write of any
// kind occurs), and infrastructure errors from the store or sink, which are
// distinguishable from all of the above via errors.Is/As.
func (m *Manager) Transition(ctx context.Context, kind model.EntityKind, recordID string, targetStatus model.Status, actor, reason string) (*Result, error) {
	if _, err := model.KindFromName(kind.String()); err != nil {
		return nil, err
	}
	if _, err := model.StatusFromCode(targetStatus.Code()); err != nil {
		return nil, err
	}
	if recordID == "" {
		return nil, fmt.Errorf("record id must not be empty")
	}

	collection := kind.Collection()
	lock := m.lockRecord(collection + "/" + recordID)
	defer m.unlockRecord(collection+"/"+recordID, lock)

	for attempt := 1; attempt <= casAttempts; attempt++ {
		result, err := m.transitionOnce(ctx, kind, collection, recordID, targetStatus, actor, reason)
		if err != nil {
			if errors.Is(err, common.ErrStaleStatus) && attempt < casAttempts {
				// An out-of-band writer changed the record between our load
				// and save; revalidate against the fresh state.
				slog.Warn("Stale status on save, revalidating",
					"kind", kind.String(),
					"record_id", recordID,
					"attempt", attempt)
				continue
			}
			return nil, err
		}
		return result, nil
	}

	return nil, fmt.Errorf("transition of %s %s gave up after %d attempts: %w",
		kind, recordID, casAttempts, common.ErrStaleStatus)
}

func (m *Manager) transitionOnce(ctx context.Context, kind model.EntityKind, collection, recordID string, targetStatus model.Status, actor, reason string) (*Result, error) {
	rec, err := m.store.Load(ctx, collection, recordID)
	if err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			return nil, &RecordNotFoundError{Kind: kind, RecordID: recordID}
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, recordID, err)
	}

	// Absent or empty status means "no status yet"; an unparseable one is an
	// error, never silently defaulted.
	var current *model.Status
	if code, ok := rec.StatusCode(); ok {
		status, parseErr := model.StatusFromCode(code)
		if parseErr != nil {
			return nil, fmt.Errorf("%s %s has invalid stored status: %w", kind, recordID, parseErr)
		}
		current = &status
	}

	if !m.registry.CanTransition(kind, current, targetStatus) {
		invalidErr := &InvalidTransitionError{Kind: kind, RecordID: recordID, From: current, To: targetStatus}
		slog.Warn("Rejected status transition", "error", invalidErr.Error())
		return nil, invalidErr
	}

	rec.SetStatus(targetStatus)
	if err := m.store.Save(ctx, collection, rec, current); err != nil {
		return nil, fmt.Errorf("failed to save %s %s: %w", kind, recordID, err)
	}

	entry, err := m.recorder.Record(ctx, kind, recordID, current, targetStatus, actor, reason)
	if err != nil {
		// The status write committed; surface the missing audit entry as an
		// infrastructure failure rather than pretending the transition
		// didn't happen.
		return nil, fmt.Errorf("status of %s %s changed to %s but audit failed: %w",
			kind, recordID, targetStatus.Code(), err)
	}

	slog.Info("Status transition",
		"kind", kind.String(),
		"record_id", recordID,
		"from", entry.FromStatus,
		"to", entry.ToStatus,
		"actor", actor)

	return &Result{Previous: current, New: targetStatus}, nil
}

// CanTransition reports whether the move is legal for the kind without
// touching the store. Pure; safe for unsynchronized concurrent use.
func (m *Manager) CanTransition(kind model.EntityKind, current *model.Status, target model.Status) bool {
	return m.registry.CanTransition(kind, current, target)
}

// ValidTransitions returns the legal target statuses for the kind and
// current status. Empty for terminal statuses and unknown combinations.
func (m *Manager) ValidTransitions(kind model.EntityKind, current model.Status) []model.Status {
	return m.registry.ValidTransitions(kind, current)
}

func (m *Manager) lockRecord(key string) *recordLock {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &recordLock{}
		m.locks[key] = lock
	}
	lock.refs++
	m.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (m *Manager) unlockRecord(key string, lock *recordLock) {
	lock.mu.Unlock()

	m.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
}
