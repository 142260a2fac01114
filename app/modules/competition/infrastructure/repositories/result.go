package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (r *Impl) CreateResult(ctx context.Context, db bun.IDB, result *ProgramResult) error {
	if _, err := r.idb(db).NewInsert().Model(result).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateResult
		}
		return fmt.Errorf("competitiondb.CreateResult: %w", err)
	}
	return nil
}

func (r *Impl) GetResult(ctx context.Context, db bun.IDB, programID, participantID int64) (*ProgramResult, error) {
	result := new(ProgramResult)
	err := r.idb(db).NewSelect().
		Model(result).
		Where("pr.program_id = ?", programID).
		Where("pr.participant_id = ?", participantID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("competitiondb.GetResult: %w", err)
	}
	return result, nil
}

func (r *Impl) ListResultsForProgram(ctx context.Context, db bun.IDB, programID int64) ([]ProgramResult, error) {
	var results []ProgramResult
	err := r.idb(db).NewSelect().
		Model(&results).
		Where("pr.program_id = ?", programID).
		Order("average_marks DESC NULLS LAST", "total_marks DESC NULLS LAST").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ListResultsForProgram: %w", err)
	}
	return results, nil
}

func (r *Impl) ListRankingRows(ctx context.Context, db bun.IDB, programID int64) ([]RankingRow, error) {
	var rows []RankingRow
	err := r.idb(db).NewSelect().
		Model((*ProgramResult)(nil)).
		ColumnExpr("pr.id AS result_id").
		ColumnExpr("pr.participant_id").
		ColumnExpr("s.name AS participant_name").
		ColumnExpr("pr.team_id").
		ColumnExpr("pr.total_marks").
		ColumnExpr("pr.average_marks").
		Join("JOIN students AS s ON s.id = pr.participant_id").
		Where("pr.program_id = ?", programID).
		Where("pr.average_marks IS NOT NULL").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ListRankingRows: %w", err)
	}
	return rows, nil
}

func (r *Impl) UpdateResult(ctx context.Context, db bun.IDB, result *ProgramResult) error {
	result.UpdatedAt = time.Now()
	res, err := r.idb(db).NewUpdate().
		Model(result).
		Column("team_id", "result_number", "judge1_marks", "judge2_marks", "judge3_marks",
			"total_marks", "average_marks", "comments", "entered_by", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("competitiondb.UpdateResult: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) BulkUpdatePositions(ctx context.Context, db bun.IDB, updates []PositionUpdate) error {
	for _, u := range updates {
		_, err := r.idb(db).NewUpdate().
			Model((*ProgramResult)(nil)).
			Set("position = ?", u.Position).
			Set("points_earned = ?", u.Points).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", u.ResultID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("competitiondb.BulkUpdatePositions: %w", err)
		}
	}
	return nil
}

func (r *Impl) MaxResultNumberForEvent(ctx context.Context, db bun.IDB, eventID int64) (int, error) {
	var max sql.NullInt64
	err := r.idb(db).NewSelect().
		Model((*ProgramResult)(nil)).
		ColumnExpr("MAX(result_number)").
		Where("event_id = ?", eventID).
		Scan(ctx, &max)
	if err != nil {
		return 0, fmt.Errorf("competitiondb.MaxResultNumberForEvent: %w", err)
	}
	return int(max.Int64), nil
}

func (r *Impl) ResultNumberForProgram(ctx context.Context, db bun.IDB, programID int64) (*int, error) {
	var number sql.NullInt64
	err := r.idb(db).NewSelect().
		Model((*ProgramResult)(nil)).
		ColumnExpr("MAX(result_number)").
		Where("program_id = ?", programID).
		Scan(ctx, &number)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ResultNumberForProgram: %w", err)
	}
	if !number.Valid {
		return nil, nil
	}
	n := int(number.Int64)
	return &n, nil
}

func (r *Impl) ListPositiveResultRows(ctx context.Context, db bun.IDB) ([]ResultPointsRow, error) {
	var rows []ResultPointsRow
	err := r.idb(db).NewSelect().
		Model((*ProgramResult)(nil)).
		ColumnExpr("pr.event_id").
		ColumnExpr("pr.participant_id").
		ColumnExpr("pr.team_id").
		ColumnExpr("pr.points_earned").
		ColumnExpr("p.is_team_based").
		Join("JOIN programs AS p ON p.id = pr.program_id").
		Where("pr.points_earned > 0").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("competitiondb.ListPositiveResultRows: %w", err)
	}
	return rows, nil
}

func (r *Impl) DeleteResultsForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramResult)(nil)).
		Where("team_id = ?", teamID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteResultsForTeam: %w", err)
	}
	return nil
}

func (r *Impl) DeleteResultsForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramResult)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteResultsForEvent: %w", err)
	}
	return nil
}

func (r *Impl) DeleteResultsForProgram(ctx context.Context, db bun.IDB, programID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*ProgramResult)(nil)).
		Where("program_id = ?", programID).
		Exec(ctx); err != nil {
		return fmt.Errorf("competitiondb.DeleteResultsForProgram: %w", err)
	}
	return nil
}
