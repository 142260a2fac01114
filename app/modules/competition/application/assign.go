package competitionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// AssignInput identifies the student to place into a program.
type AssignInput struct {
	ProgramID  int64
	StudentID  int64
	AssignedBy string
}

// Assign places a student into a program: validates category and capacity,
// allocates the chest number and records the assignment, all in one
// transaction.
func (s *Service) Assign(ctx context.Context, input AssignInput) (_ *competitiondb.ProgramAssignment, err error) {
	defer func(start time.Time) { s.observe(ctx, "Assign", err, start) }(time.Now())

	var assignment *competitiondb.ProgramAssignment
	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		assignment, err = s.assignInTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "student assigned",
		slog.Int64("program_id", input.ProgramID),
		slog.Int64("student_id", input.StudentID),
		slog.Int("chest_number", assignment.ChestNumber),
	)
	s.metrics.ChestAllocations.Inc()
	return assignment, nil
}

func (s *Service) assignInTx(ctx context.Context, tx bun.IDB, input AssignInput) (*competitiondb.ProgramAssignment, error) {
	program, err := s.programs.ProgramInfo(ctx, tx, input.ProgramID)
	if err != nil {
		return nil, err
	}
	student, err := s.roster.StudentInfo(ctx, tx, input.StudentID)
	if err != nil {
		return nil, err
	}

	if program.Category != sharedtypes.CategoryGeneral && student.Category != program.Category {
		return nil, &CategoryMismatchError{
			StudentCategory: student.Category,
			ProgramCategory: program.Category,
		}
	}

	var team *sharedtypes.TeamInfo
	if student.TeamID != nil {
		team, err = s.roster.TeamInfo(ctx, tx, *student.TeamID)
		if err != nil {
			return nil, err
		}
	}
	if program.IsTeamBased && team == nil {
		return nil, &UnaffiliatedStudentError{StudentID: student.ID}
	}

	if _, err := s.repo.GetAssignment(ctx, tx, program.ID, student.ID); err == nil {
		return nil, competitiondb.ErrDuplicateAssignment
	}

	if err := s.checkCapacity(ctx, tx, program, student.TeamID); err != nil {
		return nil, err
	}

	if err := s.repo.LockAllocationScope(ctx, tx, program.EventID, student.TeamID); err != nil {
		return nil, err
	}
	number, err := s.allocateChestNumber(ctx, tx, program.EventID, student, team, input.AssignedBy)
	if err != nil {
		return nil, err
	}

	assignment := &competitiondb.ProgramAssignment{
		ProgramID:   program.ID,
		EventID:     program.EventID,
		StudentID:   student.ID,
		TeamID:      student.TeamID,
		ChestNumber: number,
		AssignedBy:  input.AssignedBy,
	}
	if err := s.repo.CreateAssignment(ctx, tx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// checkCapacity enforces the per-team caps. Team-based programs cap members
// per team at max_participants_per_team; individual programs cap each team's
// entries at max_participants (a per-team limit, not a global one).
func (s *Service) checkCapacity(ctx context.Context, tx bun.IDB, program *sharedtypes.ProgramInfo, teamID *int64) error {
	if program.IsTeamBased {
		if program.MaxParticipantsPerTeam <= 0 {
			return nil
		}
		current, err := s.repo.CountAssignmentsForTeam(ctx, tx, program.ID, teamID)
		if err != nil {
			return err
		}
		if current >= program.MaxParticipantsPerTeam {
			return &CapacityExceededError{Scope: "team", Limit: program.MaxParticipantsPerTeam, Current: current}
		}
		return nil
	}

	if program.MaxParticipants <= 0 {
		return nil
	}
	current, err := s.repo.CountAssignmentsForTeam(ctx, tx, program.ID, teamID)
	if err != nil {
		return err
	}
	if current >= program.MaxParticipants {
		return &CapacityExceededError{Scope: "per_team", Limit: program.MaxParticipants, Current: current}
	}
	return nil
}

// AssignTeam places a whole team roster into a team-based program, validating
// the exact team size when the program fixes one. All-or-nothing.
func (s *Service) AssignTeam(ctx context.Context, programID int64, studentIDs []int64, assignedBy string) (_ []competitiondb.ProgramAssignment, err error) {
	defer func(start time.Time) { s.observe(ctx, "AssignTeam", err, start) }(time.Now())

	var assignments []competitiondb.ProgramAssignment
	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		program, err := s.programs.ProgramInfo(ctx, tx, programID)
		if err != nil {
			return err
		}
		if !program.IsTeamBased {
			return fmt.Errorf("program %d is not team based", programID)
		}
		if program.TeamSize != nil && len(studentIDs) != *program.TeamSize {
			return &TeamSizeMismatchError{Want: *program.TeamSize, Got: len(studentIDs)}
		}
		for _, studentID := range studentIDs {
			assignment, err := s.assignInTx(ctx, tx, AssignInput{
				ProgramID:  programID,
				StudentID:  studentID,
				AssignedBy: assignedBy,
			})
			if err != nil {
				return err
			}
			assignments = append(assignments, *assignment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// BulkAssignRowError pairs a rejected student with the reason.
type BulkAssignRowError struct {
	StudentID int64  `json:"student_id"`
	Err       string `json:"error"`
}

// BulkAssignResult summarizes a bulk assignment: accepted rows and per-row
// rejections.
type BulkAssignResult struct {
	Assigned []competitiondb.ProgramAssignment `json:"assigned"`
	Errors   []BulkAssignRowError              `json:"errors"`
}

// BulkAssign places many students into a program with per-row partial
// success: each row runs in its own transaction so one bad row never aborts
// the batch.
func (s *Service) BulkAssign(ctx context.Context, programID int64, studentIDs []int64, assignedBy string) (*BulkAssignResult, error) {
	result := &BulkAssignResult{}
	for _, studentID := range studentIDs {
		assignment, err := s.Assign(ctx, AssignInput{
			ProgramID:  programID,
			StudentID:  studentID,
			AssignedBy: assignedBy,
		})
		if err != nil {
			result.Errors = append(result.Errors, BulkAssignRowError{StudentID: studentID, Err: err.Error()})
			continue
		}
		result.Assigned = append(result.Assigned, *assignment)
	}
	s.logger.InfoContext(ctx, "bulk assignment finished",
		slog.Int64("program_id", programID),
		slog.Int("assigned", len(result.Assigned)),
		slog.Int("rejected", len(result.Errors)),
	)
	return result, nil
}

// ListAssignments returns a program's assignments ordered by chest number.
func (s *Service) ListAssignments(ctx context.Context, programID int64) ([]competitiondb.ProgramAssignment, error) {
	return s.repo.ListAssignmentsForProgram(ctx, nil, programID)
}

// CallingSheet returns the rows the report layer prints for a program:
// assignments with student names, ordered by chest number.
func (s *Service) CallingSheet(ctx context.Context, programID int64) ([]competitiondb.CallingSheetRow, error) {
	return s.repo.ListCallingSheetRows(ctx, nil, programID)
}
