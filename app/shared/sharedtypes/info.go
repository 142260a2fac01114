package sharedtypes

// Cross-module read models. Modules expose these through narrow reader
// interfaces instead of importing each other's repositories.

// StudentInfo is the slice of a student the competition engine needs.
type StudentInfo struct {
	ID        int64
	Name      string
	Category  Category
	TeamID    *int64
	ChestCode string
}

// TeamInfo is the slice of a team the competition engine needs.
type TeamInfo struct {
	ID     int64
	Name   string
	Number int
}

// ProgramInfo is the slice of a program the competition engine needs.
type ProgramInfo struct {
	ID                     int64
	EventID                int64
	Name                   string
	Category               Category
	IsTeamBased            bool
	MaxParticipants        int
	MaxParticipantsPerTeam int
	TeamSize               *int
}

// EventPointsFact is one positive-points result row, the unit the global
// leaderboard aggregates.
type EventPointsFact struct {
	EventID       int64
	ParticipantID int64
	TeamID        *int64
	Points        int
	IsTeamBased   bool
}

// PointAward is one points-ledger upsert request. Exactly one of TeamID and
// StudentID is set.
type PointAward struct {
	TeamID      *int64
	StudentID   *int64
	EventID     int64
	PointType   PointType
	Points      int
	Reason      string
	Description string
	AwardedBy   string
}
