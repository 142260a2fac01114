package competitiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// ProgramAssignment records a student's participation in a program. The event
// id is denormalized from the program so event-scoped queries need no join.
type ProgramAssignment struct {
	bun.BaseModel `bun:"table:program_assignments,alias:pa"`

	ID          int64     `bun:"id,pk,autoincrement"`
	ProgramID   int64     `bun:"program_id,notnull"`
	EventID     int64     `bun:"event_id,notnull"`
	StudentID   int64     `bun:"student_id,notnull"`
	TeamID      *int64    `bun:"team_id"`
	ChestNumber int       `bun:"chest_number,nullzero"`
	AssignedBy  string    `bun:"assigned_by"`
	AssignedAt  time.Time `bun:"assigned_at,nullzero,notnull,default:current_timestamp"`
}

// ChestNumber mirrors the number allocated to a student within an event.
// One row per (event, student); assignments for the same student in the same
// event reuse it.
type ChestNumber struct {
	bun.BaseModel `bun:"table:chest_numbers,alias:cn"`

	ID         int64     `bun:"id,pk,autoincrement"`
	EventID    int64     `bun:"event_id,notnull"`
	StudentID  int64     `bun:"student_id,notnull"`
	TeamID     *int64    `bun:"team_id"`
	Number     int       `bun:"chest_number,nullzero"`
	AssignedBy string    `bun:"assigned_by"`
	AssignedAt time.Time `bun:"assigned_at,nullzero,notnull,default:current_timestamp"`
}

// ProgramResult holds the judge marks and derived ranking fields for one
// participant in one program.
type ProgramResult struct {
	bun.BaseModel `bun:"table:program_results,alias:pr"`

	ID            int64     `bun:"id,pk,autoincrement"`
	ProgramID     int64     `bun:"program_id,notnull"`
	EventID       int64     `bun:"event_id,notnull"`
	ParticipantID int64     `bun:"participant_id,notnull"`
	TeamID        *int64    `bun:"team_id"`
	ResultNumber  *int      `bun:"result_number"`
	Judge1Marks   *float64  `bun:"judge1_marks"`
	Judge2Marks   *float64  `bun:"judge2_marks"`
	Judge3Marks   *float64  `bun:"judge3_marks"`
	TotalMarks    *float64  `bun:"total_marks"`
	AverageMarks  *float64  `bun:"average_marks"`
	Position      int       `bun:"position,nullzero"`
	PointsEarned  int       `bun:"points_earned,notnull,default:0"`
	Comments      string    `bun:"comments"`
	EnteredBy     string    `bun:"entered_by"`
	EnteredAt     time.Time `bun:"entered_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RankingRow is the slice of a result the ranking pass needs, with the
// participant's name joined in for the deterministic tie-break.
type RankingRow struct {
	ResultID        int64    `bun:"result_id"`
	ParticipantID   int64    `bun:"participant_id"`
	ParticipantName string   `bun:"participant_name"`
	TeamID          *int64   `bun:"team_id"`
	TotalMarks      *float64 `bun:"total_marks"`
	AverageMarks    *float64 `bun:"average_marks"`
}

// PositionUpdate carries one row of a bulk position/points write-back.
type PositionUpdate struct {
	ResultID int64
	Position int
	Points   int
}

// CallingSheetRow is an assignment joined with the student's name, ordered by
// chest number for the report layer.
type CallingSheetRow struct {
	AssignmentID int64  `bun:"assignment_id"`
	StudentID    int64  `bun:"student_id"`
	StudentName  string `bun:"student_name"`
	TeamID       *int64 `bun:"team_id"`
	ChestNumber  int    `bun:"chest_number"`
}

// ResultPointsRow feeds the global leaderboard: one positive-points result
// with its event, recipients and whether the program was team based.
type ResultPointsRow struct {
	EventID       int64  `bun:"event_id"`
	ParticipantID int64  `bun:"participant_id"`
	TeamID        *int64 `bun:"team_id"`
	PointsEarned  int    `bun:"points_earned"`
	IsTeamBased   bool   `bun:"is_team_based"`
}
