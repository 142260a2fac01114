package rosterdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Team is a persistent group of students, independent of any single event.
//
// TeamNumber is a stable positive ordinal assigned once at creation. It is
// monotonically increasing and only densely repacked by an explicit
// renumbering after a deletion. Chest number ranges key off it.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull,unique"`
	Description  string    `bun:"description"`
	TeamNumber   int       `bun:"team_number,notnull"`
	PointsEarned int       `bun:"points_earned,notnull,default:0"`
	TeamUsername string    `bun:"team_username,notnull,unique"`
	TeamPassword string    `bun:"team_password,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Student is a person with an optional team membership and a cached point
// total derived from the points ledger.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID          int64                `bun:"id,pk,autoincrement"`
	Name        string               `bun:"name,notnull"`
	StudentID   string               `bun:"student_id,notnull"`
	Category    sharedtypes.Category `bun:"category,notnull"`
	Grade       string               `bun:"grade"`
	Section     string               `bun:"section"`
	TeamID      *int64               `bun:"team_id"`
	ChestCode   string               `bun:"chest_code"`
	TotalPoints int                  `bun:"total_points,notnull,default:0"`
	CreatedAt   time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
