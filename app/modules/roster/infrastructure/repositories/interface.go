package rosterdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for team and student persistence.
// Methods accept a bun.IDB so callers can pass a transaction; a nil db falls
// back to the repository's own connection.
type Repository interface {
	// CreateTeam inserts a team. Returns ErrDuplicateTeamName on a name
	// conflict.
	CreateTeam(ctx context.Context, db bun.IDB, team *Team) error

	// GetTeam retrieves a team by id. Returns ErrNotFound if absent.
	GetTeam(ctx context.Context, db bun.IDB, id int64) (*Team, error)

	// ListTeams returns all teams ordered by team number.
	ListTeams(ctx context.Context, db bun.IDB) ([]Team, error)

	// CountTeams returns the total number of teams. The general chest-number
	// pool floor is derived from it.
	CountTeams(ctx context.Context, db bun.IDB) (int, error)

	// MaxTeamNumber returns the highest team number in use, 0 when no teams
	// exist.
	MaxTeamNumber(ctx context.Context, db bun.IDB) (int, error)

	// TeamUsernameExists reports whether a generated manager username is
	// already taken.
	TeamUsernameExists(ctx context.Context, db bun.IDB, username string) (bool, error)

	// GetTeamByUsername retrieves a team by its manager username. Returns
	// ErrNotFound if absent.
	GetTeamByUsername(ctx context.Context, db bun.IDB, username string) (*Team, error)

	// ResetTeamNumbering renumbers all teams densely from 1 by creation
	// order.
	ResetTeamNumbering(ctx context.Context, db bun.IDB) error

	// DeleteTeam removes the team row only; cascading cleanup is
	// orchestrated by the service.
	DeleteTeam(ctx context.Context, db bun.IDB, id int64) error

	// UpdateTeamPoints persists a team's cached point total.
	UpdateTeamPoints(ctx context.Context, db bun.IDB, id int64, total int) error

	// CreateStudent inserts a student. Returns ErrDuplicateStudentID on a
	// (student_id, category) conflict.
	CreateStudent(ctx context.Context, db bun.IDB, student *Student) error

	// GetStudent retrieves a student by id. Returns ErrNotFound if absent.
	GetStudent(ctx context.Context, db bun.IDB, id int64) (*Student, error)

	// ListStudents returns all students ordered by name.
	ListStudents(ctx context.Context, db bun.IDB) ([]Student, error)

	// ListTeamMembers returns the students currently on a team.
	ListTeamMembers(ctx context.Context, db bun.IDB, teamID int64) ([]Student, error)

	// UpdateStudentTeam moves a student onto a team (or off, with nil).
	UpdateStudentTeam(ctx context.Context, db bun.IDB, studentID int64, teamID *int64) error

	// DetachStudentsFromTeam clears the team reference and chest code of all
	// members of a team, forcing chest reallocation on their next assignment.
	DetachStudentsFromTeam(ctx context.Context, db bun.IDB, teamID int64) error

	// UpdateStudentPoints persists a student's cached point total.
	UpdateStudentPoints(ctx context.Context, db bun.IDB, id int64, total int) error

	// UpdateStudentChestCode persists a student's chest code.
	UpdateStudentChestCode(ctx context.Context, db bun.IDB, id int64, code string) error
}
