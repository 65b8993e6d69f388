// Package sentinel holds infrastructure facts that stores return, optionally
// wrapped, so services can tell a missing row from a broken backend.
// Input validation failures belong in pkg/domain-errors.
package sentinel

import "errors"

var (
	// ErrNotFound means the record, score or artifact does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
