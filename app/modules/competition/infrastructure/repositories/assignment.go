package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Impl implements Repository on top of bun.
type Impl struct {
	db *bun.DB
}

func New(db *bun.DB) *Impl {
	return &Impl{db: db}
}

var _ Repository = (*Impl)(nil)

func (r *Impl) idb(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateAssignment(ctx context.Context, db bun.IDB, assignment *ProgramAssignment) error {
	if _, err := r.idb(db).NewInsert().Model(assignment).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAssignment
		}
		return fmt.Errorf("competitiondb.CreateAssignment: %w", err)
	}
	return nil
}

func (r *Impl) GetAssignment(ctx context.Context, db bun.IDB, programID, studentID int64) (*ProgramAssignment, error) {
	assignment := new(ProgramAssignment)
	err := r.idb(db).NewSelect().
		Model(assignment).
		Where("pa.program_id = ?", programID).
		Where("pa.student_id = ?", studentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("competitiondb.GetAssignment: %w", err)
	}
	return assignment, nil
}

func (r *Impl) ListAssignmentsForProgram(ctx context.Context, db bun.IDB, programID int64) ([]ProgramAssignment, error) {
	var assignments []ProgramAssignment
	err := r.idb(db).NewSelect().
		Model(&assignments).
		Where("pa.program_id = ?", programID).
		Order("chest_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ListAssignmentsForProgram: %w", err)
	}
	return assignments, nil
}

func (r *Impl) ListCallingSheetRows(ctx context.Context, db bun.IDB, programID int64) ([]CallingSheetRow, error) {
	var rows []CallingSheetRow
	err := r.idb(db).NewSelect().
		Model((*ProgramAssignment)(nil)).
		ColumnExpr("pa.id AS assignment_id").
		ColumnExpr("pa.student_id").
		ColumnExpr("s.name AS student_name").
		ColumnExpr("pa.team_id").
		ColumnExpr("pa.chest_number").
		Join("JOIN students AS s ON s.id = pa.student_id").
		Where("pa.program_id = ?", programID).
		Order("pa.chest_number ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ListCallingSheetRows: %w", err)
	}
	return rows, nil
}

func (r *Impl) CountAssignmentsForTeam(ctx context.Context, db bun.IDB, programID int64, teamID *int64) (int, error) {
	q := r.idb(db).NewSelect().
		Model((*ProgramAssignment)(nil)).
		Where("pa.program_id = ?", programID)
	if teamID == nil {
		q = q.Where("pa.team_id IS NULL")
	} else {
		q = q.Where("pa.team_id = ?", *teamID)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("competitiondb.CountAssignmentsForTeam: %w", err)
	}
	return count, nil
}

func (r *Impl) ClearStudentEventNumbers(ctx context.Context, db bun.IDB, eventID, studentID int64) error {
	_, err := r.idb(db).NewUpdate().
		Model((*ProgramAssignment)(nil)).
		Set("chest_number = NULL").
		Where("event_id = ?", eventID).
		Where("student_id = ?", studentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("competitiondb.ClearStudentEventNumbers: %w", err)
	}
	_, err = r.idb(db).NewDelete().
		Model((*ChestNumber)(nil)).
		Where("event_id = ?", eventID).
		Where("student_id = ?", studentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("competitiondb.ClearStudentEventNumbers: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAssignmentsForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramAssignment)(nil)).
		Where("team_id = ?", teamID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteAssignmentsForTeam: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAssignmentsForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramAssignment)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteAssignmentsForEvent: %w", err)
	}
	return nil
}

func (r *Impl) DeleteAssignmentsForProgram(ctx context.Context, db bun.IDB, programID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramAssignment)(nil)).
		Where("program_id = ?", programID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteAssignmentsForProgram: %w", err)
	}
	return nil
}

// isUniqueViolation matches unique constraint failures for both supported
// dialects (pgdriver error 23505, sqlite "UNIQUE constraint failed").
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
