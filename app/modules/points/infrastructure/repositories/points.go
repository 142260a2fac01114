package pointsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *Impl) FindRecord(ctx context.Context, db bun.IDB, key RecordKey) (*PointsRecord, error) {
	record := new(PointsRecord)
	q := r.idb(db).NewSelect().
		Model(record).
		Where("pts.event_id = ?", key.EventID).
		Where("pts.point_type = ?", key.PointType).
		Where("pts.reason = ?", key.Reason)
	if key.TeamID != nil {
		q = q.Where("pts.team_id = ?", *key.TeamID)
	} else {
		q = q.Where("pts.team_id IS NULL")
	}
	if key.StudentID != nil {
		q = q.Where("pts.student_id = ?", *key.StudentID)
	} else {
		q = q.Where("pts.student_id IS NULL")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pointsdb.FindRecord: %w", err)
	}
	return record, nil
}

func (r *Impl) CreateRecord(ctx context.Context, db bun.IDB, record *PointsRecord) error {
	if _, err := r.idb(db).NewInsert().Model(record).Exec(ctx); err != nil {
		return fmt.Errorf("pointsdb.CreateRecord: %w", err)
	}
	return nil
}

func (r *Impl) UpdateRecord(ctx context.Context, db bun.IDB, id int64, points int, description, awardedBy string) error {
	_, err := r.idb(db).NewUpdate().
		Model((*PointsRecord)(nil)).
		Set("points = ?", points).
		Set("description = ?", description).
		Set("awarded_by = ?", awardedBy).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pointsdb.UpdateRecord: %w", err)
	}
	return nil
}

func (r *Impl) SumPointsForTeam(ctx context.Context, db bun.IDB, teamID int64) (int, error) {
	var sum sql.NullInt64
	err := r.idb(db).NewSelect().
		Model((*PointsRecord)(nil)).
		ColumnExpr("SUM(points)").
		Where("team_id = ?", teamID).
		Scan(ctx, &sum)
	if err != nil {
		return 0, fmt.Errorf("pointsdb.SumPointsForTeam: %w", err)
	}
	return int(sum.Int64), nil
}

func (r *Impl) SumPointsForStudent(ctx context.Context, db bun.IDB, studentID int64) (int, error) {
	var sum sql.NullInt64
	err := r.idb(db).NewSelect().
		Model((*PointsRecord)(nil)).
		ColumnExpr("SUM(points)").
		Where("student_id = ?", studentID).
		Scan(ctx, &sum)
	if err != nil {
		return 0, fmt.Errorf("pointsdb.SumPointsForStudent: %w", err)
	}
	return int(sum.Int64), nil
}

func (r *Impl) ListRecordsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]PointsRecord, error) {
	var records []PointsRecord
	err := r.idb(db).NewSelect().
		Model(&records).
		Where("pts.event_id = ?", eventID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("pointsdb.ListRecordsForEvent: %w", err)
	}
	return records, nil
}

func (r *Impl) ListRecordsForTeam(ctx context.Context, db bun.IDB, teamID int64) ([]PointsRecord, error) {
	var records []PointsRecord
	err := r.idb(db).NewSelect().
		Model(&records).
		Where("pts.team_id = ?", teamID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("pointsdb.ListRecordsForTeam: %w", err)
	}
	return records, nil
}

func (r *Impl) RecipientsForEvent(ctx context.Context, db bun.IDB, eventID int64) (*EventRecipients, error) {
	recipients := &EventRecipients{}
	err := r.idb(db).NewSelect().
		Model((*PointsRecord)(nil)).
		ColumnExpr("DISTINCT team_id").
		Where("event_id = ?", eventID).
		Where("team_id IS NOT NULL").
		Scan(ctx, &recipients.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("pointsdb.RecipientsForEvent: %w", err)
	}
	err = r.idb(db).NewSelect().
		Model((*PointsRecord)(nil)).
		ColumnExpr("DISTINCT student_id").
		Where("event_id = ?", eventID).
		Where("student_id IS NOT NULL").
		Scan(ctx, &recipients.StudentIDs)
	if err != nil {
		return nil, fmt.Errorf("pointsdb.RecipientsForEvent: %w", err)
	}
	return recipients, nil
}

func (r *Impl) TopPerformersForEvent(ctx context.Context, db bun.IDB, eventID int64, limit int) ([]TopPerformerRow, error) {
	var rows []TopPerformerRow
	err := r.idb(db).NewSelect().
		Model((*PointsRecord)(nil)).
		ColumnExpr("pts.student_id").
		ColumnExpr("s.name AS student_name").
		ColumnExpr("SUM(pts.points) AS points").
		Join("JOIN students AS s ON s.id = pts.student_id").
		Where("pts.event_id = ?", eventID).
		Where("pts.student_id IS NOT NULL").
		GroupExpr("pts.student_id, s.name").
		OrderExpr("SUM(pts.points) DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("pointsdb.TopPerformersForEvent: %w", err)
	}
	return rows, nil
}

func (r *Impl) DeleteRecordsForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*PointsRecord)(nil)).
		Where("team_id = ?", teamID).
		Exec(ctx); err != nil {
		return fmt.Errorf("pointsdb.DeleteRecordsForTeam: %w", err)
	}
	return nil
}

func (r *Impl) DeleteRecordsForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	if _, err := r.idb(db).NewDelete().
		Model((*PointsRecord)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx); err != nil {
		return fmt.Errorf("pointsdb.DeleteRecordsForEvent: %w", err)
	}
	return nil
}
