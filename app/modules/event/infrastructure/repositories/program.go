package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

func (r *Impl) CreateProgram(ctx context.Context, db bun.IDB, program *Program) error {
	if _, err := r.idb(db).NewInsert().Model(program).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateProgramName
		}
		return fmt.Errorf("eventdb.CreateProgram: %w", err)
	}
	return nil
}

func (r *Impl) GetProgram(ctx context.Context, db bun.IDB, id int64) (*Program, error) {
	program := new(Program)
	err := r.idb(db).NewSelect().
		Model(program).
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("eventdb.GetProgram: %w", err)
	}
	return program, nil
}

func (r *Impl) ListProgramsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]Program, error) {
	var programs []Program
	err := r.idb(db).NewSelect().
		Model(&programs).
		Where("event_id = ?", eventID).
		Order("start_time ASC NULLS LAST", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("eventdb.ListProgramsForEvent: %w", err)
	}
	return programs, nil
}

func (r *Impl) UpdateProgram(ctx context.Context, db bun.IDB, program *Program) error {
	program.UpdatedAt = time.Now()
	res, err := r.idb(db).NewUpdate().
		Model(program).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("eventdb.UpdateProgram: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) DeleteProgram(ctx context.Context, db bun.IDB, id int64) error {
	res, err := r.idb(db).NewDelete().
		Model((*Program)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("eventdb.DeleteProgram: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ListProgramIDsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]int64, error) {
	var ids []int64
	err := r.idb(db).NewSelect().
		Model((*Program)(nil)).
		Column("id").
		Where("event_id = ?", eventID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("eventdb.ListProgramIDsForEvent: %w", err)
	}
	return ids, nil
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
