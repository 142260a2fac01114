package rosterservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// CreateStudentInput carries the fields for a new student.
type CreateStudentInput struct {
	Name      string
	StudentID string
	Category  sharedtypes.Category
	Grade     string
	Section   string
	TeamID    *int64
}

// InvalidStudentError reports a student row that fails validation. Bulk
// import surfaces one per rejected row.
type InvalidStudentError struct {
	StudentID string
	Reason    string
}

func (e *InvalidStudentError) Error() string {
	return fmt.Sprintf("invalid student %q: %s", e.StudentID, e.Reason)
}

// CreateStudent validates and registers a student.
func (s *Service) CreateStudent(ctx context.Context, input CreateStudentInput) (_ *rosterdb.Student, err error) {
	defer func(start time.Time) { s.observe(ctx, "CreateStudent", err, start) }(time.Now())

	if input.Name == "" {
		return nil, &InvalidStudentError{StudentID: input.StudentID, Reason: "name is required"}
	}
	if input.StudentID == "" {
		return nil, &InvalidStudentError{Reason: "student id is required"}
	}
	if input.Category != sharedtypes.CategoryHS && input.Category != sharedtypes.CategoryHSS {
		return nil, &InvalidStudentError{StudentID: input.StudentID, Reason: fmt.Sprintf("unknown category %q", input.Category)}
	}
	if input.TeamID != nil {
		if _, err = s.repo.GetTeam(ctx, nil, *input.TeamID); err != nil {
			return nil, err
		}
	}

	student := &rosterdb.Student{
		Name:      input.Name,
		StudentID: input.StudentID,
		Category:  input.Category,
		Grade:     input.Grade,
		Section:   input.Section,
		TeamID:    input.TeamID,
	}
	if err = s.repo.CreateStudent(ctx, nil, student); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "student registered",
		slog.Int64("id", student.ID),
		slog.String("student_id", student.StudentID),
		slog.String("category", string(student.Category)),
	)
	return student, nil
}

// GetStudent returns a single student.
func (s *Service) GetStudent(ctx context.Context, id int64) (*rosterdb.Student, error) {
	return s.repo.GetStudent(ctx, nil, id)
}

// ListStudents returns all students.
func (s *Service) ListStudents(ctx context.Context) ([]rosterdb.Student, error) {
	return s.repo.ListStudents(ctx, nil)
}

// MoveStudentToTeam reassigns a student's team membership. Chest-number
// reallocation for affected events happens lazily on the student's next
// program assignment.
func (s *Service) MoveStudentToTeam(ctx context.Context, studentID int64, teamID *int64) error {
	if teamID != nil {
		if _, err := s.repo.GetTeam(ctx, nil, *teamID); err != nil {
			return err
		}
	}
	return s.repo.UpdateStudentTeam(ctx, nil, studentID, teamID)
}

// RowError pairs a bulk-import row index with the error that rejected it.
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ImportResult summarizes a bulk student import.
type ImportResult struct {
	Created []rosterdb.Student `json:"created"`
	Errors  []RowError         `json:"errors"`
}

// ImportStudents registers a batch of parsed rows with per-row error
// reporting; a bad row never aborts the batch.
func (s *Service) ImportStudents(ctx context.Context, rows []CreateStudentInput) (*ImportResult, error) {
	result := &ImportResult{}
	for i, row := range rows {
		student, err := s.CreateStudent(ctx, row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err.Error()})
			continue
		}
		result.Created = append(result.Created, *student)
	}
	s.logger.InfoContext(ctx, "student import finished",
		slog.Int("created", len(result.Created)),
		slog.Int("rejected", len(result.Errors)),
	)
	return result, nil
}
