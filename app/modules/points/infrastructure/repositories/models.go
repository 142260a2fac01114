package pointsdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// PointsRecord is one point fact in the ledger. Exactly one of TeamID and
// StudentID is set. (recipient, event, point_type, reason) is the idempotency
// key: re-awarding updates the existing fact instead of duplicating it.
type PointsRecord struct {
	bun.BaseModel `bun:"table:points_records,alias:pts"`

	ID          int64                 `bun:"id,pk,autoincrement"`
	AwardID     uuid.UUID             `bun:"award_id,type:uuid,notnull"`
	TeamID      *int64                `bun:"team_id"`
	StudentID   *int64                `bun:"student_id"`
	EventID     int64                 `bun:"event_id,notnull"`
	Points      int                   `bun:"points,notnull"`
	PointType   sharedtypes.PointType `bun:"point_type,notnull"`
	Reason      string                `bun:"reason,notnull"`
	Description string                `bun:"description"`
	AwardedBy   string                `bun:"awarded_by"`
	CreatedAt   time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*PointsRecord)(nil)

func (p *PointsRecord) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if p.AwardID == uuid.Nil {
		p.AwardID = uuid.New()
	}
	return nil
}

// RecordKey identifies one ledger fact for the upsert lookup.
type RecordKey struct {
	TeamID    *int64
	StudentID *int64
	EventID   int64
	PointType sharedtypes.PointType
	Reason    string
}

// EventRecipients lists who holds point facts in an event, captured before a
// cascade delete so cached totals can be refreshed afterwards.
type EventRecipients struct {
	TeamIDs    []int64
	StudentIDs []int64
}

// TopPerformerRow is one student's point sum within an event.
type TopPerformerRow struct {
	StudentID   int64  `bun:"student_id"`
	StudentName string `bun:"student_name"`
	Points      int    `bun:"points"`
}
