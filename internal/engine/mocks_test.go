package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/fiscaladmin/gam-status/internal/common"
	"github.com/fiscaladmin/gam-status/internal/model"
)

// memStore is an in-memory RecordStore double with the same conditional-write
// semantics as the SQLite store.
type memStore struct {
	mu      sync.Mutex
	records map[string]*model.Record // keyed collection/id
	loads   int
	saves   int // successful writes only
	saveErr error
	// onLoad, when set, runs after each load with the 1-based load count.
	// Tests use it to simulate out-of-band writers racing the engine.
	onLoad func(loadCount int)
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*model.Record)}
}

func key(collection, recordID string) string {
	return collection + "/" + recordID
}

func (s *memStore) put(collection string, rec *model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key(collection, rec.ID)] = copyRecord(rec)
}

// setStatus writes a status directly, bypassing the engine. Test-only stand-in
// for an out-of-band writer.
func (s *memStore) setStatus(collection, recordID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key(collection, recordID)].Fields[model.StatusField] = code
}

func (s *memStore) status(collection, recordID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key(collection, recordID)]
	if !ok {
		return ""
	}
	return rec.Fields[model.StatusField]
}

func (s *memStore) Load(_ context.Context, collection, recordID string) (*model.Record, error) {
	s.mu.Lock()
	rec, ok := s.records[key(collection, recordID)]
	var out *model.Record
	if ok {
		out = copyRecord(rec)
	}
	s.loads++
	count := s.loads
	hook := s.onLoad
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, recordID, common.ErrRecordNotFound)
	}
	if hook != nil {
		hook(count)
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, collection string, rec *model.Record, observed *model.Status) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[key(collection, rec.ID)]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, rec.ID, common.ErrRecordNotFound)
	}

	current := stored.Fields[model.StatusField]
	if observed == nil {
		if current != "" {
			return fmt.Errorf("%s/%s: %w", collection, rec.ID, common.ErrStaleStatus)
		}
	} else if current != observed.Code() {
		return fmt.Errorf("%s/%s: %w", collection, rec.ID, common.ErrStaleStatus)
	}

	s.records[key(collection, rec.ID)] = copyRecord(rec)
	s.saves++
	return nil
}

func copyRecord(rec *model.Record) *model.Record {
	fields := make(map[string]string, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}
	return &model.Record{ID: rec.ID, Fields: fields}
}

// memSink is an in-memory AuditSink double.
type memSink struct {
	mu      sync.Mutex
	entries []model.AuditEntry
	err     error
}

func (s *memSink) Append(_ context.Context, entry model.AuditEntry) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memSink) all() []model.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditEntry(nil), s.entries...)
}
