package model

import (
	"errors"
	"fmt"
	"strings"
)

// EntityKind identifies a class of record moving through the reconciliation
// pipeline. Each kind maps to the external collection holding its records.
type EntityKind string

// Entity kinds.
const (
	KindStatement  EntityKind = "STATEMENT"
	KindBankTrx    EntityKind = "BANK_TRX"
	KindSecuTrx    EntityKind = "SECU_TRX"
	KindEnrichment EntityKind = "ENRICHMENT"
	KindPair       EntityKind = "PAIR"
	KindException  EntityKind = "EXCEPTION"
)

// AuditCollection is the collection the audit sink appends to.
const AuditCollection = "audit_log"

// ErrUnknownKind indicates an entity kind with no catalog entry.
var ErrUnknownKind = errors.New("unknown entity kind")

var kindCollections = map[EntityKind]string{
	KindStatement:  "bank_statement",
	KindBankTrx:    "bank_total_trx",
	KindSecuTrx:    "secu_total_trx",
	KindEnrichment: "trx_enrichment",
	KindPair:       "trx_pair",
	KindException:  "exception_queue",
}

var allKinds = []EntityKind{
	KindStatement,
	KindBankTrx,
	KindSecuTrx,
	KindEnrichment,
	KindPair,
	KindException,
}

// Collection returns the name of the external collection holding this kind's
// records.
func (k EntityKind) Collection() string {
	return kindCollections[k]
}

func (k EntityKind) String() string {
	return string(k)
}

// KindFromName looks up an EntityKind by name. Comparison is
// case-insensitive.
func KindFromName(name string) (EntityKind, error) {
	k := EntityKind(strings.ToUpper(name))
	if _, ok := kindCollections[k]; !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownKind)
	}
	return k, nil
}

// Kinds returns the entity kind catalog in declaration order. The returned
// slice is a copy.
func Kinds() []EntityKind {
	out := make([]EntityKind, len(allKinds))
	copy(out, allKinds)
	return out
}
