// Package common provides shared utilities and types used across the
// application.
package common

import "errors"

// Infrastructure errors. Unlike the user-correctable conditions in the
// model package, these surface to the caller as hard failures: the turn
// is aborted and the session left unpersisted so the caller can retry
// without data loss.
var (
	// ErrNotFound indicates a missing record in a store.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry indicates a uniqueness violation in a store.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrSessionClosed indicates a turn was attempted against a
	// COMPLETE or CANCELLED session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrMissingConfig indicates required configuration is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig indicates configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
