package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindCollections(t *testing.T) {
	expected := map[EntityKind]string{
		KindStatement:  "bank_statement",
		KindBankTrx:    "bank_total_trx",
		KindSecuTrx:    "secu_total_trx",
		KindEnrichment: "trx_enrichment",
		KindPair:       "trx_pair",
		KindException:  "exception_queue",
	}

	require.Len(t, Kinds(), len(expected))
	for kind, collection := range expected {
		assert.Equal(t, collection, kind.Collection(), "kind %s", kind)
	}
}

func TestKindFromName(t *testing.T) {
	for _, name := range []string{"PAIR", "pair", "Pair"} {
		kind, err := KindFromName(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, KindPair, kind)
	}

	_, err := KindFromName("LEDGER")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRecordStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		wantCode string
		wantOK   bool
	}{
		{name: "status present", fields: map[string]string{"status": "new"}, wantCode: "new", wantOK: true},
		{name: "status absent", fields: map[string]string{"amount": "12.50"}, wantOK: false},
		{name: "status empty", fields: map[string]string{"status": ""}, wantOK: false},
		{name: "nil fields", fields: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{ID: "R1", Fields: tt.fields}
			code, ok := rec.StatusCode()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRecordSetStatus(t *testing.T) {
	rec := &Record{ID: "R1"}
	rec.SetStatus(StatusImporting)

	code, ok := rec.StatusCode()
	require.True(t, ok)
	assert.Equal(t, "importing", code)
}
