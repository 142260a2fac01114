package competitionservice

import (
	"fmt"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// CapacityExceededError reports that an assignment would push a team past a
// program's cap. Scope names which limit was hit.
type CapacityExceededError struct {
	Scope   string // "team" or "per_team"
	Limit   int
	Current int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s capacity exceeded: %d of %d slots used", e.Scope, e.Current, e.Limit)
}

// CategoryMismatchError reports a student assigned to a program of another
// category. The general category never mismatches.
type CategoryMismatchError struct {
	StudentCategory sharedtypes.Category
	ProgramCategory sharedtypes.Category
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("student category %q does not match program category %q",
		e.StudentCategory, e.ProgramCategory)
}

// TeamSizeMismatchError reports a team-based bulk assignment whose roster does
// not match the program's fixed team size.
type TeamSizeMismatchError struct {
	Want int
	Got  int
}

func (e *TeamSizeMismatchError) Error() string {
	return fmt.Sprintf("program requires exactly %d team members, got %d", e.Want, e.Got)
}

// UnaffiliatedStudentError reports a team-based assignment of a student who
// has no team.
type UnaffiliatedStudentError struct {
	StudentID int64
}

func (e *UnaffiliatedStudentError) Error() string {
	return fmt.Sprintf("student %d has no team for a team-based program", e.StudentID)
}
