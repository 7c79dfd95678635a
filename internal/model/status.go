// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Status is one value of the closed set of lifecycle states shared across
// entity kinds. The underlying string is the lowercase code persisted in the
// record store; display labels live in a side table and are presentation only.
type Status string

// Status values. The code is the single source of truth for persisted status
// strings; no other package should carry status string literals.
const (
	// Universal.
	StatusNew   Status = "new"
	StatusError Status = "error"

	// Statement-level.
	StatusImporting     Status = "importing"
	StatusImported      Status = "imported"
	StatusConsolidating Status = "consolidating"
	StatusConsolidated  Status = "consolidated"

	// Transaction-level.
	StatusProcessing   Status = "processing"
	StatusEnriched     Status = "enriched"
	StatusPaired       Status = "paired"
	StatusPostingReady Status = "posting_ready"
	StatusPosted       Status = "posted"
	StatusManualReview Status = "manual_review"
	StatusUnmatched    Status = "unmatched"

	// Pair-level.
	StatusAutoAccepted  Status = "auto_accepted"
	StatusPendingReview Status = "pending_review"
	StatusConfirmed     Status = "confirmed"
	StatusRejected      Status = "rejected"

	// Exception-level.
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDismissed  Status = "dismissed"
)

// ErrUnknownStatus indicates a status code with no catalog entry. Callers
// must never substitute a default status for it.
var ErrUnknownStatus = errors.New("unknown status code")

// statusLabels maps each status to its human-readable label for operator
// tooling and dropdowns.
var statusLabels = map[Status]string{
	StatusNew:           "New",
	StatusError:         "Error",
	StatusImporting:     "Importing",
	StatusImported:      "Imported",
	StatusConsolidating: "Consolidating",
	StatusConsolidated:  "Consolidated",
	StatusProcessing:    "Processing",
	StatusEnriched:      "Enriched",
	StatusPaired:        "Paired",
	StatusPostingReady:  "Posting Ready",
	StatusPosted:        "Posted",
	StatusManualReview:  "Manual Review",
	StatusUnmatched:     "Unmatched",
	StatusAutoAccepted:  "Auto-Accepted",
	StatusPendingReview: "Pending Review",
	StatusConfirmed:     "Confirmed",
	StatusRejected:      "Rejected",
	StatusOpen:          "Open",
	StatusInProgress:    "In Progress",
	StatusResolved:      "Resolved",
	StatusDismissed:     "Dismissed",
}

// allStatuses preserves catalog declaration order for listings.
var allStatuses = []Status{
	StatusNew,
	StatusError,
	StatusImporting,
	StatusImported,
	StatusConsolidating,
	StatusConsolidated,
	StatusProcessing,
	StatusEnriched,
	StatusPaired,
	StatusPostingReady,
	StatusPosted,
	StatusManualReview,
	StatusUnmatched,
	StatusAutoAccepted,
	StatusPendingReview,
	StatusConfirmed,
	StatusRejected,
	StatusOpen,
	StatusInProgress,
	StatusResolved,
	StatusDismissed,
}

// Code returns the lowercase value stored in the database.
func (s Status) Code() string {
	return string(s)
}

// Label returns the human-readable label for the status.
func (s Status) Label() string {
	return statusLabels[s]
}

func (s Status) String() string {
	return string(s)
}

// StatusFromCode looks up a Status by its persisted code value. Comparison is
// case-insensitive. An empty or unrecognized code yields ErrUnknownStatus.
func StatusFromCode(code string) (Status, error) {
	if code == "" {
		return "", fmt.Errorf("empty status code: %w", ErrUnknownStatus)
	}
	s := Status(strings.ToLower(code))
	if _, ok := statusLabels[s]; !ok {
		return "", fmt.Errorf("%q: %w", code, ErrUnknownStatus)
	}
	return s, nil
}

// Statuses returns the full status catalog in declaration order. The returned
// slice is a copy; callers may not mutate the catalog.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}
