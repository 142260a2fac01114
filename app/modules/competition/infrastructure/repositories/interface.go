package competitiondb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for assignment, chest-number and result
// persistence. Methods accept a bun.IDB so callers can pass a transaction; a
// nil db falls back to the repository's own connection.
type Repository interface {
	// CreateAssignment inserts an assignment. Returns
	// ErrDuplicateAssignment on a (program, student) conflict.
	CreateAssignment(ctx context.Context, db bun.IDB, assignment *ProgramAssignment) error

	// GetAssignment retrieves the assignment of a student to a program.
	GetAssignment(ctx context.Context, db bun.IDB, programID, studentID int64) (*ProgramAssignment, error)

	// ListAssignmentsForProgram returns a program's assignments ordered by
	// chest number.
	ListAssignmentsForProgram(ctx context.Context, db bun.IDB, programID int64) ([]ProgramAssignment, error)

	// ListCallingSheetRows returns a program's assignments joined with
	// student names, ordered by chest number.
	ListCallingSheetRows(ctx context.Context, db bun.IDB, programID int64) ([]CallingSheetRow, error)

	// CountAssignmentsForTeam counts a program's assignments for a team, or
	// for unaffiliated participants when teamID is nil.
	CountAssignmentsForTeam(ctx context.Context, db bun.IDB, programID int64, teamID *int64) (int, error)

	// ClearStudentEventNumbers removes the chest-number facts recorded for
	// a student in an event, on assignments and the mirror store alike.
	// Used when the student's team changed since the numbers were handed
	// out.
	ClearStudentEventNumbers(ctx context.Context, db bun.IDB, eventID, studentID int64) error

	// DeleteAssignmentsForTeam removes all of a team's assignments.
	DeleteAssignmentsForTeam(ctx context.Context, db bun.IDB, teamID int64) error

	// DeleteAssignmentsForEvent removes all assignments in an event.
	DeleteAssignmentsForEvent(ctx context.Context, db bun.IDB, eventID int64) error

	// DeleteAssignmentsForProgram removes a program's assignments.
	DeleteAssignmentsForProgram(ctx context.Context, db bun.IDB, programID int64) error

	// GetChestNumber retrieves the mirror record for (event, student).
	GetChestNumber(ctx context.Context, db bun.IDB, eventID, studentID int64) (*ChestNumber, error)

	// UpsertChestNumber inserts or updates the mirror record keyed by
	// (event, student).
	UpsertChestNumber(ctx context.Context, db bun.IDB, chest *ChestNumber) error

	// MaxChestNumberInRange returns the highest number handed out in
	// [low, high) for the given event and team scope, checking both the
	// assignment and the mirror store. teamID nil scopes to the general
	// pool; high <= 0 means no upper bound. Returns 0 when the range is
	// untouched.
	MaxChestNumberInRange(ctx context.Context, db bun.IDB, eventID int64, teamID *int64, low, high int) (int, error)

	// LockAllocationScope serializes concurrent allocations in the same
	// (event, team) scope for the duration of the transaction. A no-op on
	// dialects without row locks, where the single write connection
	// serializes instead.
	LockAllocationScope(ctx context.Context, db bun.IDB, eventID int64, teamID *int64) error

	// DeleteChestNumbersForTeam removes a team's mirror records.
	DeleteChestNumbersForTeam(ctx context.Context, db bun.IDB, teamID int64) error

	// DeleteChestNumbersForEvent removes an event's mirror records.
	DeleteChestNumbersForEvent(ctx context.Context, db bun.IDB, eventID int64) error

	// CreateResult inserts a result. Returns ErrDuplicateResult on a
	// (program, participant) conflict.
	CreateResult(ctx context.Context, db bun.IDB, result *ProgramResult) error

	// GetResult retrieves the result of a participant in a program.
	GetResult(ctx context.Context, db bun.IDB, programID, participantID int64) (*ProgramResult, error)

	// ListResultsForProgram returns a program's results ordered by average
	// then total, best first.
	ListResultsForProgram(ctx context.Context, db bun.IDB, programID int64) ([]ProgramResult, error)

	// ListRankingRows returns the marked results of a program joined with
	// participant names, for the ranking pass.
	ListRankingRows(ctx context.Context, db bun.IDB, programID int64) ([]RankingRow, error)

	// UpdateResult persists a result's mutable fields.
	UpdateResult(ctx context.Context, db bun.IDB, result *ProgramResult) error

	// BulkUpdatePositions writes position and points for a batch of
	// results.
	BulkUpdatePositions(ctx context.Context, db bun.IDB, updates []PositionUpdate) error

	// MaxResultNumberForEvent returns the highest result number assigned in
	// an event, 0 when none.
	MaxResultNumberForEvent(ctx context.Context, db bun.IDB, eventID int64) (int, error)

	// ResultNumberForProgram returns the result number already assigned to
	// a program, nil when the program has none yet.
	ResultNumberForProgram(ctx context.Context, db bun.IDB, programID int64) (*int, error)

	// ListPositiveResultRows returns every result with positive points
	// across all events, with the owning program's team-based flag.
	ListPositiveResultRows(ctx context.Context, db bun.IDB) ([]ResultPointsRow, error)

	// DeleteResultsForTeam removes all of a team's results.
	DeleteResultsForTeam(ctx context.Context, db bun.IDB, teamID int64) error

	// DeleteResultsForEvent removes all results in an event.
	DeleteResultsForEvent(ctx context.Context, db bun.IDB, eventID int64) error

	// DeleteResultsForProgram removes a program's results.
	DeleteResultsForProgram(ctx context.Context, db bun.IDB, programID int64) error
}
