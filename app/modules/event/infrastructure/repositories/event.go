package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
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

func (r *Impl) CreateEvent(ctx context.Context, db bun.IDB, event *Event) error {
	if _, err := r.idb(db).NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("eventdb.CreateEvent: %w", err)
	}
	return nil
}

func (r *Impl) GetEvent(ctx context.Context, db bun.IDB, id int64) (*Event, error) {
	event := new(Event)
	err := r.idb(db).NewSelect().
		Model(event).
		Where("e.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("eventdb.GetEvent: %w", err)
	}
	return event, nil
}

func (r *Impl) ListEvents(ctx context.Context, db bun.IDB) ([]Event, error) {
	var events []Event
	err := r.idb(db).NewSelect().
		Model(&events).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("eventdb.ListEvents: %w", err)
	}
	return events, nil
}

func (r *Impl) UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, status sharedtypes.EventStatus) error {
	res, err := r.idb(db).NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("eventdb.UpdateEventStatus: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) DeleteEvent(ctx context.Context, db bun.IDB, id int64) error {
	res, err := r.idb(db).NewDelete().
		Model((*Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("eventdb.DeleteEvent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
