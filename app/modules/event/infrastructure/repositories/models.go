package eventdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Event is a competition occasion. Programs, announcements, chest numbers and
// points records hang off it; teams do not (they are event-independent).
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64                   `bun:"id,pk,autoincrement"`
	Title       string                  `bun:"title,notnull"`
	Description string                  `bun:"description"`
	EventType   string                  `bun:"event_type,notnull,default:'other'"`
	Status      sharedtypes.EventStatus `bun:"status,notnull,default:'draft'"`
	StartDate   time.Time               `bun:"start_date,nullzero"`
	EndDate     time.Time               `bun:"end_date,nullzero"`
	Venue       string                  `bun:"venue"`
	CreatedBy   string                  `bun:"created_by"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time               `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Program is a scheduled competition item within an event.
//
// Capacity semantics: for individual programs MaxParticipants is a per-team
// cap; for team-based programs MaxParticipantsPerTeam applies and TeamSize is
// the exact required team size.
type Program struct {
	bun.BaseModel `bun:"table:programs,alias:p"`

	ID                     int64                   `bun:"id,pk,autoincrement"`
	EventID                int64                   `bun:"event_id,notnull"`
	Name                   string                  `bun:"name,notnull"`
	Description            string                  `bun:"description"`
	Category               sharedtypes.Category    `bun:"category,notnull,default:'general'"`
	ProgramType            sharedtypes.ProgramType `bun:"program_type,notnull,default:'stage'"`
	IsTeamBased            bool                    `bun:"is_team_based,notnull,default:false"`
	MaxParticipants        *int                    `bun:"max_participants"`
	MaxParticipantsPerTeam *int                    `bun:"max_participants_per_team"`
	TeamSize               *int                    `bun:"team_size"`
	Venue                  string                  `bun:"venue"`
	StartTime              *time.Time              `bun:"start_time"`
	EndTime                *time.Time              `bun:"end_time"`
	IsFinished             bool                    `bun:"is_finished,notnull,default:false"`
	CreatedAt              time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt              time.Time               `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Announcement is a message posted on an event. Cascades with the event.
type Announcement struct {
	bun.BaseModel `bun:"table:event_announcements,alias:an"`

	ID          int64     `bun:"id,pk,autoincrement"`
	EventID     int64     `bun:"event_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Message     string    `bun:"message,notnull"`
	IsImportant bool      `bun:"is_important,notnull,default:false"`
	CreatedBy   string    `bun:"created_by"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
