package model

// StatusField is the record field holding the persisted status code.
const StatusField = "status"

// Record is one externally owned row loaded from a kind's collection. This
// engine only observes and mutates its status field; all other fields pass
// through the store untouched.
type Record struct {
	ID     string
	Fields map[string]string
}

// StatusCode returns the record's raw status code. The second return is false
// when the record carries no status yet; an absent or empty field both count
// as "no status", which is distinct from an invalid code.
func (r *Record) StatusCode() (string, bool) {
	code, ok := r.Fields[StatusField]
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// SetStatus writes the status field on the in-memory record.
func (r *Record) SetStatus(s Status) {
	if r.Fields == nil {
		r.Fields = make(map[string]string, 1)
	}
	r.Fields[StatusField] = s.Code()
}
