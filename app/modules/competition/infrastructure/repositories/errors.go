package competitiondb

import "errors"

// Sentinel errors for the competition repository layer.
var (
	// ErrNotFound indicates the requested assignment, result or chest
	// number does not exist.
	ErrNotFound = errors.New("competition record not found")

	// ErrDuplicateAssignment indicates a (program, student) uniqueness
	// violation.
	ErrDuplicateAssignment = errors.New("student already assigned to program")

	// ErrDuplicateResult indicates a (program, participant) uniqueness
	// violation.
	ErrDuplicateResult = errors.New("result already recorded for participant")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
