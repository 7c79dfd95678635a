package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fiscaladmin/gam-status/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrUnknownCollection = errors.New("unknown collection")
)

// knownCollections allowlists the table names queries may interpolate. All
// of them come from the entity kind catalog plus the audit log.
var knownCollections = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, kind := range model.Kinds() {
		set[kind.Collection()] = struct{}{}
	}
	set[model.AuditCollection] = struct{}{}
	return set
}()

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCollection ensures the collection name is in the catalog before it
// is interpolated into SQL.
func validateCollection(collection string) error {
	if _, ok := knownCollections[collection]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return nil
}
