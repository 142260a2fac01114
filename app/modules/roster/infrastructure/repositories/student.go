package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (r *Impl) CreateStudent(ctx context.Context, db bun.IDB, student *Student) error {
	if _, err := r.idb(db).NewInsert().Model(student).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateStudentID
		}
		return fmt.Errorf("rosterdb.CreateStudent: %w", err)
	}
	return nil
}

func (r *Impl) GetStudent(ctx context.Context, db bun.IDB, id int64) (*Student, error) {
	student := new(Student)
	err := r.idb(db).NewSelect().
		Model(student).
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetStudent: %w", err)
	}
	return student, nil
}

func (r *Impl) ListStudents(ctx context.Context, db bun.IDB) ([]Student, error) {
	var students []Student
	err := r.idb(db).NewSelect().
		Model(&students).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rosterdb.ListStudents: %w", err)
	}
	return students, nil
}

func (r *Impl) ListTeamMembers(ctx context.Context, db bun.IDB, teamID int64) ([]Student, error) {
	var students []Student
	err := r.idb(db).NewSelect().
		Model(&students).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rosterdb.ListTeamMembers: %w", err)
	}
	return students, nil
}

func (r *Impl) UpdateStudentTeam(ctx context.Context, db bun.IDB, studentID int64, teamID *int64) error {
	res, err := r.idb(db).NewUpdate().
		Model((*Student)(nil)).
		Set("team_id = ?", teamID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", studentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateStudentTeam: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) DetachStudentsFromTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	_, err := r.idb(db).NewUpdate().
		Model((*Student)(nil)).
		Set("team_id = NULL").
		Set("chest_code = ''").
		Set("updated_at = ?", time.Now()).
		Where("team_id = ?", teamID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.DetachStudentsFromTeam: %w", err)
	}
	return nil
}

func (r *Impl) UpdateStudentPoints(ctx context.Context, db bun.IDB, id int64, total int) error {
	_, err := r.idb(db).NewUpdate().
		Model((*Student)(nil)).
		Set("total_points = ?", total).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateStudentPoints: %w", err)
	}
	return nil
}

func (r *Impl) UpdateStudentChestCode(ctx context.Context, db bun.IDB, id int64, code string) error {
	_, err := r.idb(db).NewUpdate().
		Model((*Student)(nil)).
		Set("chest_code = ?", code).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateStudentChestCode: %w", err)
	}
	return nil
}
