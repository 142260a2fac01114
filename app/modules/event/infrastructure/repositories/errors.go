package eventdb

import "errors"

// Sentinel errors for the repository layer. These indicate infrastructure
// outcomes (presence/absence of rows); the service layer maps them into
// domain errors.
var (
	// ErrNotFound indicates the requested event or program does not exist.
	ErrNotFound = errors.New("event record not found")

	// ErrDuplicateProgramName indicates a (event, name) uniqueness violation.
	ErrDuplicateProgramName = errors.New("program name already used in event")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
