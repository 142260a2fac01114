package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

func (r *Impl) CreateTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if _, err := r.idb(db).NewInsert().Model(team).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTeamName
		}
		return fmt.Errorf("rosterdb.CreateTeam: %w", err)
	}
	return nil
}

func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, id int64) (*Team, error) {
	team := new(Team)
	err := r.idb(db).NewSelect().
		Model(team).
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetTeam: %w", err)
	}
	return team, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB) ([]Team, error) {
	var teams []Team
	err := r.idb(db).NewSelect().
		Model(&teams).
		Order("team_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rosterdb.ListTeams: %w", err)
	}
	return teams, nil
}

func (r *Impl) CountTeams(ctx context.Context, db bun.IDB) (int, error) {
	count, err := r.idb(db).NewSelect().Model((*Team)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rosterdb.CountTeams: %w", err)
	}
	return count, nil
}

func (r *Impl) MaxTeamNumber(ctx context.Context, db bun.IDB) (int, error) {
	var max sql.NullInt64
	err := r.idb(db).NewSelect().
		Model((*Team)(nil)).
		ColumnExpr("MAX(team_number)").
		Scan(ctx, &max)
	if err != nil {
		return 0, fmt.Errorf("rosterdb.MaxTeamNumber: %w", err)
	}
	return int(max.Int64), nil
}

func (r *Impl) TeamUsernameExists(ctx context.Context, db bun.IDB, username string) (bool, error) {
	exists, err := r.idb(db).NewSelect().
		Model((*Team)(nil)).
		Where("team_username = ?", username).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("rosterdb.TeamUsernameExists: %w", err)
	}
	return exists, nil
}

func (r *Impl) GetTeamByUsername(ctx context.Context, db bun.IDB, username string) (*Team, error) {
	team := new(Team)
	err := r.idb(db).NewSelect().
		Model(team).
		Where("team_username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetTeamByUsername: %w", err)
	}
	return team, nil
}

// ResetTeamNumbering renumbers all teams densely from 1 by creation order.
// Only called after a deletion, inside the deletion transaction.
func (r *Impl) ResetTeamNumbering(ctx context.Context, db bun.IDB) error {
	idb := r.idb(db)

	var teams []Team
	err := idb.NewSelect().
		Model(&teams).
		Column("id", "team_number").
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.ResetTeamNumbering: %w", err)
	}

	for i, team := range teams {
		number := i + 1
		if team.TeamNumber == number {
			continue
		}
		_, err := idb.NewUpdate().
			Model((*Team)(nil)).
			Set("team_number = ?", number).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", team.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("rosterdb.ResetTeamNumbering: %w", err)
		}
	}
	return nil
}

func (r *Impl) DeleteTeam(ctx context.Context, db bun.IDB, id int64) error {
	res, err := r.idb(db).NewDelete().
		Model((*Team)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.DeleteTeam: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) UpdateTeamPoints(ctx context.Context, db bun.IDB, id int64, total int) error {
	_, err := r.idb(db).NewUpdate().
		Model((*Team)(nil)).
		Set("points_earned = ?", total).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateTeamPoints: %w", err)
	}
	return nil
}

// isUniqueViolation matches unique constraint failures for both supported
// dialects.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
