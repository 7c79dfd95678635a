package engine

import (
	"fmt"

	"github.com/fiscaladmin/gam-status/internal/common"
	"github.com/fiscaladmin/gam-status/internal/model"
)

// InvalidTransitionError reports a requested transition that the registry
// does not permit, including illegal initial-status attempts when the record
// carried no status. It carries the full context for diagnostics; the caller
// recovers by choosing a legal target, never by the engine auto-correcting.
type InvalidTransitionError struct {
	Kind     model.EntityKind
	RecordID string
	From     *model.Status // nil when the record had no status yet
	To       model.Status
}

func (e *InvalidTransitionError) Error() string {
	from := model.NullStatusMarker
	if e.From != nil {
		from = e.From.Code()
	}
	return fmt.Sprintf("invalid transition for %s record %s: %s -> %s",
		e.Kind, e.RecordID, from, e.To.Code())
}

// RecordNotFoundError reports a transition against a record that does not
// exist in the store. Fatal for the call; never retried internally.
type RecordNotFoundError struct {
	Kind     model.EntityKind
	RecordID string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record not found: %s %s", e.Kind, e.RecordID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return common.ErrRecordNotFound
}
