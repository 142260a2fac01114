package eventdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func (r *Impl) CreateAnnouncement(ctx context.Context, db bun.IDB, a *Announcement) error {
	if _, err := r.idb(db).NewInsert().Model(a).Exec(ctx); err != nil {
		return fmt.Errorf("eventdb.CreateAnnouncement: %w", err)
	}
	return nil
}

func (r *Impl) ListAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]Announcement, error) {
	var announcements []Announcement
	err := r.idb(db).NewSelect().
		Model(&announcements).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("eventdb.ListAnnouncementsForEvent: %w", err)
	}
	return announcements, nil
}

func (r *Impl) DeleteAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	_, err := r.idb(db).NewDelete().
		Model((*Announcement)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("eventdb.DeleteAnnouncementsForEvent: %w", err)
	}
	return nil
}
