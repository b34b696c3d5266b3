// Package audit provides a persistent trail of gate decisions.
package audit

import (
	"errors"
	"time"
)

// Store persists decision records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores one decision record.
	// Overwrites if a record with the same ID already exists.
	Save(rec *Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(id string) (*Record, error)

	// ByCheck returns all records for a check, in the order they were saved.
	// Returns an empty slice (not an error) if the check has no records.
	ByCheck(checkID string) ([]*Record, error)

	// ByRule returns records for a rule, newest first.
	// A limit of zero or less returns all of them.
	ByRule(ruleID string, limit int) ([]*Record, error)

	// Prune removes records older than cutoff and reports how many went.
	Prune(cutoff time.Time) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for audit operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("audit record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("audit store closed")
)
