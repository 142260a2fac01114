package pointsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for points-ledger persistence. Methods
// accept a bun.IDB so callers can pass a transaction; a nil db falls back to
// the repository's own connection.
type Repository interface {
	// FindRecord looks up the fact matching the idempotency key. Returns
	// ErrNotFound when absent.
	FindRecord(ctx context.Context, db bun.IDB, key RecordKey) (*PointsRecord, error)

	// CreateRecord inserts a new fact.
	CreateRecord(ctx context.Context, db bun.IDB, record *PointsRecord) error

	// UpdateRecord refreshes the points, description and awarded_by of an
	// existing fact.
	UpdateRecord(ctx context.Context, db bun.IDB, id int64, points int, description, awardedBy string) error

	// SumPointsForTeam totals a team's facts across all events.
	SumPointsForTeam(ctx context.Context, db bun.IDB, teamID int64) (int, error)

	// SumPointsForStudent totals a student's facts across all events.
	SumPointsForStudent(ctx context.Context, db bun.IDB, studentID int64) (int, error)

	// ListRecordsForEvent returns an event's facts, newest first.
	ListRecordsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]PointsRecord, error)

	// ListRecordsForTeam returns a team's facts, newest first.
	ListRecordsForTeam(ctx context.Context, db bun.IDB, teamID int64) ([]PointsRecord, error)

	// RecipientsForEvent lists the teams and students holding facts in an
	// event.
	RecipientsForEvent(ctx context.Context, db bun.IDB, eventID int64) (*EventRecipients, error)

	// TopPerformersForEvent ranks students by their point sum within an
	// event, highest first.
	TopPerformersForEvent(ctx context.Context, db bun.IDB, eventID int64, limit int) ([]TopPerformerRow, error)

	// DeleteRecordsForTeam removes all of a team's facts.
	DeleteRecordsForTeam(ctx context.Context, db bun.IDB, teamID int64) error

	// DeleteRecordsForEvent removes all facts in an event.
	DeleteRecordsForEvent(ctx context.Context, db bun.IDB, eventID int64) error
}
