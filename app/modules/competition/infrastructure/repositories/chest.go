package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

func (r *Impl) GetChestNumber(ctx context.Context, db bun.IDB, eventID, studentID int64) (*ChestNumber, error) {
	chest := new(ChestNumber)
	err := r.idb(db).NewSelect().
		Model(chest).
		Where("cn.event_id = ?", eventID).
		Where("cn.student_id = ?", studentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("competitiondb.GetChestNumber: %w", err)
	}
	return chest, nil
}

func (r *Impl) UpsertChestNumber(ctx context.Context, db bun.IDB, chest *ChestNumber) error {
	_, err := r.idb(db).NewInsert().
		Model(chest).
		On("CONFLICT (event_id, student_id) DO UPDATE").
		Set("team_id = EXCLUDED.team_id").
		Set("chest_number = EXCLUDED.chest_number").
		Set("assigned_by = EXCLUDED.assigned_by").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("competitiondb.UpsertChestNumber: %w", err)
	}
	return nil
}

func (r *Impl) MaxChestNumberInRange(ctx context.Context, db bun.IDB, eventID int64, teamID *int64, low, high int) (int, error) {
	scope := func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("event_id = ?", eventID).Where("chest_number >= ?", low)
		if high > 0 {
			q = q.Where("chest_number < ?", high)
		}
		if teamID == nil {
			return q.Where("team_id IS NULL")
		}
		return q.Where("team_id = ?", *teamID)
	}

	var fromAssignments sql.NullInt64
	err := scope(r.idb(db).NewSelect().
		Model((*ProgramAssignment)(nil)).
		ColumnExpr("MAX(chest_number)")).
		Scan(ctx, &fromAssignments)
	if err != nil {
		return 0, fmt.Errorf("competitiondb.MaxChestNumberInRange: %w", err)
	}

	var fromChest sql.NullInt64
	err = scope(r.idb(db).NewSelect().
		Model((*ChestNumber)(nil)).
		ColumnExpr("MAX(chest_number)")).
		Scan(ctx, &fromChest)
	if err != nil {
		return 0, fmt.Errorf("competitiondb.MaxChestNumberInRange: %w", err)
	}

	max := fromAssignments.Int64
	if fromChest.Int64 > max {
		max = fromChest.Int64
	}
	return int(max), nil
}

// LockAllocationScope takes a transaction-scoped advisory lock keyed on
// (event, team) so two allocations in the same scope cannot read the same
// max. SQLite runs on a single write connection, so there it is a no-op.
func (r *Impl) LockAllocationScope(ctx context.Context, db bun.IDB, eventID int64, teamID *int64) error {
	if r.db.Dialect().Name() != dialect.PG {
		return nil
	}
	var scope int64
	if teamID != nil {
		scope = *teamID
	}
	if _, err := r.idb(db).NewRaw("SELECT pg_advisory_xact_lock(?, ?)", int32(eventID), int32(scope)).Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.LockAllocationScope: %w", err)
	}
	return nil
}

func (r *Impl) DeleteChestNumbersForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ChestNumber)(nil)).
		Where("team_id = ?", teamID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteChestNumbersForTeam: %w", err)
	}
	return nil
}

func (r *Impl) DeleteChestNumbersForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ChestNumber)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteChestNumbersForEvent: %w", err)
	}
	return nil
}
