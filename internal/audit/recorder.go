// Package audit builds the immutable entries recording every executed status
// transition and hands them to the external audit sink.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaladmin/gam-status/internal/model"
	"github.com/fiscaladmin/gam-status/internal/service"
)

// timestampFormat is RFC 3339 with fixed-width nanoseconds. Unlike
// time.RFC3339Nano it never trims trailing zeros, so the persisted strings
// sort lexicographically in chronological order.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Recorder creates one write-once audit entry per successful transition. It
// never updates or reads back prior entries; the sink owns retention.
type Recorder struct {
	sink  service.AuditSink
	now   func() time.Time
	newID func() string
}

// NewRecorder creates a Recorder appending to the given sink.
func NewRecorder(sink service.AuditSink) *Recorder {
	return &Recorder{
		sink:  sink,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Record builds the audit entry for one executed transition and appends it to
// the sink. The entry id and timestamp are generated here, never supplied by
// the caller; from is rendered as the null-marker when the record carried no
// status before the transition.
func (r *Recorder) Record(ctx context.Context, kind model.EntityKind, recordID string, from *model.Status, to model.Status, actor, reason string) (model.AuditEntry, error) {
	fromCode := model.NullStatusMarker
	if from != nil {
		fromCode = from.Code()
	}

	entry := model.AuditEntry{
		ID:         r.newID(),
		EntityKind: kind.String(),
		EntityID:   recordID,
		FromStatus: fromCode,
		ToStatus:   to.Code(),
		Actor:      actor,
		Reason:     reason,
		Timestamp:  r.now().UTC().Format(timestampFormat),
	}

	if err := r.sink.Append(ctx, entry); err != nil {
		return model.AuditEntry{}, fmt.Errorf("failed to append audit entry for %s %s: %w", kind, recordID, err)
	}

	return entry, nil
}
