package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromCode_CaseInsensitive(t *testing.T) {
	for _, code := range []string{"new", "NEW", "New", "nEw"} {
		status, err := StatusFromCode(code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, StatusNew, status, "code %q", code)
	}
}

func TestStatusFromCode_AllCatalogCodes(t *testing.T) {
	for _, status := range Statuses() {
		parsed, err := StatusFromCode(status.Code())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestStatusFromCode_Unknown(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "unrecognized code", code: "definitely_not_a_status"},
		{name: "empty code", code: ""},
		{name: "near miss", code: "postingready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StatusFromCode(tt.code)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownStatus)
		})
	}
}

func TestStatusLabels(t *testing.T) {
	// Every cataloged status carries a display label.
	for _, status := range Statuses() {
		assert.NotEmpty(t, status.Label(), "status %s", status)
	}

	assert.Equal(t, "Posting Ready", StatusPostingReady.Label())
	assert.Equal(t, "Auto-Accepted", StatusAutoAccepted.Label())
	assert.Equal(t, "Manual Review", StatusManualReview.Label())
}

func TestStatusCatalogSize(t *testing.T) {
	assert.Len(t, Statuses(), 21)
}

func TestStatusString_ReturnsCode(t *testing.T) {
	assert.Equal(t, "pending_review", StatusPendingReview.String())
}
