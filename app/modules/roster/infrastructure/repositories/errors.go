package rosterdb

import "errors"

// Sentinel errors for the roster repository layer.
var (
	// ErrNotFound indicates the requested team or student does not exist.
	ErrNotFound = errors.New("roster record not found")

	// ErrDuplicateTeamName indicates a team name uniqueness violation.
	ErrDuplicateTeamName = errors.New("team name already taken")

	// ErrDuplicateStudentID indicates a (student_id, category) uniqueness
	// violation.
	ErrDuplicateStudentID = errors.New("student id already registered in category")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
