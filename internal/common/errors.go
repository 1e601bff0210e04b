// Package common defines shared sentinel errors used across the punchclock
// layers. Callers should use errors.Is to match these values; services wrap
// them with fmt.Errorf("%w: ...") to add context without breaking matching.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Caller-fault validation errors.
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidRange = errors.New("invalid date range")

	// Clock state-machine precondition violations. These are surfaced to the
	// caller and never retried: the state will not change by retrying.
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNoOpenSession    = errors.New("no open session")

	// Enrichment side effects. Capture failures are logged by the clock
	// engine and never returned as the primary operation's error.
	ErrCaptureFailed = errors.New("capture failed")

	// Persistence failures, fatal to the operation. Retry policy belongs to
	// the storage layer, not the core.
	ErrStorage = errors.New("storage failure")
)
