package model

// NullStatusMarker is the persisted from-status value for transitions out of
// a record that carried no status yet.
const NullStatusMarker = "null"

// ActorOperator is the actor recorded for transitions triggered by a human
// operator rather than an automated pipeline component.
const ActorOperator = "OPERATOR"

// AuditEntry is one immutable record of an executed status transition. It is
// constructed exactly once per successful transition and never updated or
// deleted; the external audit sink owns retention. All fields are persisted
// as strings; Timestamp is an RFC 3339 UTC instant generated server-side.
type AuditEntry struct {
	ID         string
	EntityKind string
	EntityID   string
	FromStatus string // status code, or NullStatusMarker
	ToStatus   string
	Actor      string
	Reason     string
	Timestamp  string
}
