package eventdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Repository defines the contract for event and program persistence.
// Methods accept a bun.IDB so callers can pass a transaction; a nil db falls
// back to the repository's own connection.
type Repository interface {
	// CreateEvent inserts a new event.
	CreateEvent(ctx context.Context, db bun.IDB, event *Event) error

	// GetEvent retrieves an event by id. Returns ErrNotFound if absent.
	GetEvent(ctx context.Context, db bun.IDB, id int64) (*Event, error)

	// ListEvents returns all events, newest first.
	ListEvents(ctx context.Context, db bun.IDB) ([]Event, error)

	// UpdateEventStatus sets the event's lifecycle status.
	UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, status sharedtypes.EventStatus) error

	// DeleteEvent removes the event row only; dependent rows are cleaned up by
	// the owning modules inside the same transaction.
	DeleteEvent(ctx context.Context, db bun.IDB, id int64) error

	// CreateProgram inserts a new program. Returns ErrDuplicateProgramName on
	// an (event, name) conflict.
	CreateProgram(ctx context.Context, db bun.IDB, program *Program) error

	// GetProgram retrieves a program by id. Returns ErrNotFound if absent.
	GetProgram(ctx context.Context, db bun.IDB, id int64) (*Program, error)

	// ListProgramsForEvent returns an event's programs ordered by start time
	// then name.
	ListProgramsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]Program, error)

	// UpdateProgram persists program field changes.
	UpdateProgram(ctx context.Context, db bun.IDB, program *Program) error

	// DeleteProgram removes the program row.
	DeleteProgram(ctx context.Context, db bun.IDB, id int64) error

	// ListProgramIDsForEvent returns the ids of all programs in an event.
	ListProgramIDsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]int64, error)

	// CreateAnnouncement inserts an event announcement.
	CreateAnnouncement(ctx context.Context, db bun.IDB, a *Announcement) error

	// ListAnnouncementsForEvent returns an event's announcements, newest first.
	ListAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]Announcement, error)

	// DeleteAnnouncementsForEvent removes all announcements for an event.
	DeleteAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) error
}
