package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaladmin/gam-status/internal/model"
)

type captureSink struct {
	entries []model.AuditEntry
	err     error
}

func (s *captureSink) Append(_ context.Context, entry model.AuditEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func TestRecorder_RecordCopiesCodesVerbatim(t *testing.T) {
	sink := &captureSink{}
	recorder := NewRecorder(sink)

	from := model.StatusProcessing
	entry, err := recorder.Record(context.Background(), model.KindBankTrx, "BT001",
		&from, model.StatusEnriched, "rows-enrichment", "Enrichment complete")
	require.NoError(t, err)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, entry, sink.entries[0])
	assert.Equal(t, "BANK_TRX", entry.EntityKind)
	assert.Equal(t, "BT001", entry.EntityID)
	assert.Equal(t, "processing", entry.FromStatus)
	assert.Equal(t, "enriched", entry.ToStatus)
	assert.Equal(t, "rows-enrichment", entry.Actor)
	assert.Equal(t, "Enrichment complete", entry.Reason)
	assert.NotEmpty(t, entry.ID)
}

func TestRecorder_NullMarkerForAbsentStatus(t *testing.T) {
	sink := &captureSink{}
	recorder := NewRecorder(sink)

	entry, err := recorder.Record(context.Background(), model.KindPair, "P001",
		nil, model.StatusPendingReview, model.ActorOperator, "First assignment")
	require.NoError(t, err)

	assert.Equal(t, model.NullStatusMarker, entry.FromStatus)
}

func TestRecorder_TimestampIsServerSideUTC(t *testing.T) {
	sink := &captureSink{}
	recorder := NewRecorder(sink)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.FixedZone("CET", 3600))
	recorder.now = func() time.Time { return fixed }

	entry, err := recorder.Record(context.Background(), model.KindException, "EX001",
		nil, model.StatusOpen, "pairing-engine", "Unmatched transaction")
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339Nano, entry.Timestamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fixed))
	assert.Equal(t, "2026-03-14T08:26:53.589793238Z", entry.Timestamp)
}

func TestRecorder_TimestampKeepsTrailingZeros(t *testing.T) {
	// Fixed-width fractional seconds keep lexicographic order chronological;
	// a trimmed ".1Z" would string-sort after a later ".10000001Z".
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "trailing zeros preserved",
			time: time.Date(2026, 8, 29, 10, 0, 0, 100000000, time.UTC),
			want: "2026-08-29T10:00:00.100000000Z",
		},
		{
			name: "whole second keeps full width",
			time: time.Date(2026, 8, 29, 10, 0, 1, 0, time.UTC),
			want: "2026-08-29T10:00:01.000000000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			recorder := NewRecorder(sink)
			recorder.now = func() time.Time { return tt.time }

			entry, err := recorder.Record(context.Background(), model.KindBankTrx, "BT001",
				nil, model.StatusNew, "rows-enrichment", "Initial assignment")
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Timestamp)
		})
	}
}

func TestRecorder_FreshIDPerEntry(t *testing.T) {
	sink := &captureSink{}
	recorder := NewRecorder(sink)
	from := model.StatusOpen

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		entry, err := recorder.Record(context.Background(), model.KindException, "EX001",
			&from, model.StatusInProgress, model.ActorOperator, "Investigation started")
		require.NoError(t, err)
		assert.False(t, seen[entry.ID], "duplicate id %s", entry.ID)
		seen[entry.ID] = true
	}
}

func TestRecorder_SinkFailureSurfaces(t *testing.T) {
	sinkErr := errors.New("sink unavailable")
	recorder := NewRecorder(&captureSink{err: sinkErr})

	_, err := recorder.Record(context.Background(), model.KindStatement, "S001",
		nil, model.StatusNew, "statement-importer", "Initial import")
	require.Error(t, err)
	assert.ErrorIs(t, err, sinkErr)
}
