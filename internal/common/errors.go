// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// ErrRecordNotFound indicates the referenced record does not exist in
	// the store.
	ErrRecordNotFound = errors.New("record not found")
	// ErrStaleStatus indicates a conditional status write missed because
	// the record changed since it was loaded.
	ErrStaleStatus = errors.New("record status changed since load")
)
