// Package structs holds the request and response DTOs of the HTTP API.
package structs

import "time"

// CreateEventRequest creates an event.
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Venue       string     `json:"venue"`
	CreatedBy   string     `json:"created_by"`
}

// TransitionEventRequest moves an event through its lifecycle.
type TransitionEventRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published ongoing completed cancelled"`
}

// CreateProgramRequest creates a program within an event.
type CreateProgramRequest struct {
	Name                   string     `json:"name" validate:"required"`
	Description            string     `json:"description"`
	Category               string     `json:"category" validate:"omitempty,oneof=hs hss general"`
	ProgramType            string     `json:"program_type" validate:"omitempty,oneof=stage off_stage"`
	IsTeamBased            bool       `json:"is_team_based"`
	MaxParticipants        *int       `json:"max_participants" validate:"omitempty,gt=0"`
	MaxParticipantsPerTeam *int       `json:"max_participants_per_team" validate:"omitempty,gt=0"`
	TeamSize               *int       `json:"team_size" validate:"omitempty,gt=0"`
	Venue                  string     `json:"venue"`
	StartTime              *time.Time `json:"start_time"`
	EndTime                *time.Time `json:"end_time"`
	ScheduleText           string     `json:"schedule_text"`
}

// CreateAnnouncementRequest posts an announcement on an event.
type CreateAnnouncementRequest struct {
	Title     string `json:"title" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Important bool   `json:"important"`
}

// CreateTeamRequest creates a team; credentials are generated server side.
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateTeamResponse returns the generated manager credentials once.
type CreateTeamResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TeamNumber   int    `json:"team_number"`
	TeamUsername string `json:"team_username"`
	TeamPassword string `json:"team_password"`
}

// CreateStudentRequest registers a student.
type CreateStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
	Category  string `json:"category" validate:"required,oneof=hs hss"`
	Grade     string `json:"grade"`
	Section   string `json:"section"`
	TeamID    *int64 `json:"team_id"`
}

// AssignRequest places one student into a program.
type AssignRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
}

// BulkAssignRequest places many students into a program. TeamBlock marks an
// all-or-nothing team entry validated against the program's team size.
type BulkAssignRequest struct {
	StudentIDs []int64 `json:"student_ids" validate:"required,min=1"`
	TeamBlock  bool    `json:"team_block"`
}

// EnterMarksRequest records judge marks for one participant. Marks are raw
// strings; unparseable values count as absent.
type EnterMarksRequest struct {
	ParticipantID int64  `json:"participant_id" validate:"required"`
	Judge1        string `json:"judge1_marks"`
	Judge2        string `json:"judge2_marks"`
	Judge3        string `json:"judge3_marks"`
	Comments      string `json:"comments"`
}

// ManualAwardRequest records an admin bonus or penalty.
type ManualAwardRequest struct {
	TeamID    *int64 `json:"team_id"`
	StudentID *int64 `json:"student_id"`
	EventID   int64  `json:"event_id" validate:"required"`
	PointType string `json:"point_type" validate:"required,oneof=manual_bonus manual_penalty achievement"`
	Points    int    `json:"points" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// LoginRequest authenticates a team manager with generated credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token.
type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	TeamID int64  `json:"team_id,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
