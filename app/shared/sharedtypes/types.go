package sharedtypes

// Category identifies the academic bucket a student or program belongs to.
// "general" is the catch-all bucket: programs in it accept students of any
// category.
type Category string

const (
	CategoryHS      Category = "hs"
	CategoryHSS     Category = "hss"
	CategoryGeneral Category = "general"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryHS, CategoryHSS, CategoryGeneral:
		return true
	}
	return false
}

// IndividualOnly reports whether programs of this category must be
// individual (never team-based).
func (c Category) IndividualOnly() bool {
	return c == CategoryHS || c == CategoryHSS
}

// PointType classifies why points were awarded.
type PointType string

const (
	PointTypeWinner        PointType = "event_winner"
	PointTypeRunnerUp      PointType = "event_runner_up"
	PointTypeParticipation PointType = "event_participation"
	PointTypeManualBonus   PointType = "manual_bonus"
	PointTypeManualPenalty PointType = "manual_penalty"
	PointTypeAchievement   PointType = "achievement"
)

func (p PointType) Valid() bool {
	switch p {
	case PointTypeWinner, PointTypeRunnerUp, PointTypeParticipation,
		PointTypeManualBonus, PointTypeManualPenalty, PointTypeAchievement:
		return true
	}
	return false
}

// PointTypeForPosition maps a ranked position to the point type recorded in
// the points ledger for that row.
func PointTypeForPosition(position int) PointType {
	switch position {
	case 1:
		return PointTypeWinner
	case 2:
		return PointTypeRunnerUp
	default:
		return PointTypeParticipation
	}
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusDraft:
		return next == EventStatusPublished || next == EventStatusCancelled
	case EventStatusPublished:
		return next == EventStatusOngoing || next == EventStatusCancelled
	case EventStatusOngoing:
		return next == EventStatusCompleted || next == EventStatusCancelled
	}
	return false
}

// ProgramType distinguishes stage from off-stage programs.
type ProgramType string

const (
	ProgramTypeStage    ProgramType = "stage"
	ProgramTypeOffStage ProgramType = "off_stage"
)

// Role is the acting principal's role, supplied by the auth collaborator.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleTeamManager Role = "team_manager"
	RoleStudent     Role = "student"
)
