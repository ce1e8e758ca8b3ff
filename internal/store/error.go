package store

import "errors"

var (
	// ErrCorruptRecord marks a persisted document that no longer parses.
	// Readers recover with the empty value instead of failing the
	// operation; the sentinel lets callers distinguish "absent" from
	// "recovered".
	ErrCorruptRecord = errors.New("corrupt persisted record")
)
