package eventservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// CreateProgramInput carries the fields for a new program. ScheduleText is an
// optional human phrase ("friday 3pm") used when StartTime is not given.
type CreateProgramInput struct {
	EventID                int64
	Name                   string
	Description            string
	Category               sharedtypes.Category
	ProgramType            sharedtypes.ProgramType
	IsTeamBased            bool
	MaxParticipants        *int
	MaxParticipantsPerTeam *int
	TeamSize               *int
	Venue                  string
	StartTime              *time.Time
	EndTime                *time.Time
	ScheduleText           string
}

// CreateProgram validates and creates a program within an event.
//
// Rules enforced (not merely validated): hs/hss programs are always
// individual, so team-based flags and team sizes are cleared for them;
// team-based programs must declare a team size.
func (s *Service) CreateProgram(ctx context.Context, input CreateProgramInput) (_ *eventdb.Program, err error) {
	defer func(start time.Time) { s.observe(ctx, "CreateProgram", err, start) }(time.Now())

	if _, err = s.repo.GetEvent(ctx, nil, input.EventID); err != nil {
		return nil, err
	}

	program := &eventdb.Program{
		EventID:                input.EventID,
		Name:                   input.Name,
		Description:            input.Description,
		Category:               input.Category,
		ProgramType:            input.ProgramType,
		IsTeamBased:            input.IsTeamBased,
		MaxParticipants:        input.MaxParticipants,
		MaxParticipantsPerTeam: input.MaxParticipantsPerTeam,
		TeamSize:               input.TeamSize,
		Venue:                  input.Venue,
		StartTime:              input.StartTime,
		EndTime:                input.EndTime,
	}
	if program.Category == "" {
		program.Category = sharedtypes.CategoryGeneral
	}
	if program.ProgramType == "" {
		program.ProgramType = sharedtypes.ProgramTypeStage
	}

	if err = s.normalizeProgram(program); err != nil {
		return nil, err
	}

	if program.StartTime == nil && input.ScheduleText != "" {
		parsed, parseErr := s.parseScheduleText(input.ScheduleText)
		if parseErr != nil {
			return nil, parseErr
		}
		program.StartTime = parsed
	}

	if err = s.repo.CreateProgram(ctx, nil, program); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "program created",
		slog.Int64("program_id", program.ID),
		slog.Int64("event_id", program.EventID),
		slog.String("name", program.Name),
		slog.String("category", string(program.Category)),
	)
	return program, nil
}

// GetProgram returns a single program.
func (s *Service) GetProgram(ctx context.Context, id int64) (*eventdb.Program, error) {
	return s.repo.GetProgram(ctx, nil, id)
}

// ListPrograms returns an event's programs.
func (s *Service) ListPrograms(ctx context.Context, eventID int64) ([]eventdb.Program, error) {
	return s.repo.ListProgramsForEvent(ctx, nil, eventID)
}

// DeleteProgram removes a program and its competition facts.
func (s *Service) DeleteProgram(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe(ctx, "DeleteProgram", err, start) }(time.Now())

	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		if _, err := s.repo.GetProgram(ctx, tx, id); err != nil {
			return err
		}
		if err := s.competition.DeleteForProgram(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.DeleteProgram(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "program deleted", slog.Int64("program_id", id))
	return nil
}

// ProgramInfo exposes a program's configuration to the competition engine.
func (s *Service) ProgramInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.ProgramInfo, error) {
	program, err := s.repo.GetProgram(ctx, db, id)
	if err != nil {
		return nil, err
	}
	info := &sharedtypes.ProgramInfo{
		ID:          program.ID,
		EventID:     program.EventID,
		Name:        program.Name,
		Category:    program.Category,
		IsTeamBased: program.IsTeamBased,
		TeamSize:    program.TeamSize,
	}
	if program.MaxParticipants != nil {
		info.MaxParticipants = *program.MaxParticipants
	}
	if program.MaxParticipantsPerTeam != nil {
		info.MaxParticipantsPerTeam = *program.MaxParticipantsPerTeam
	}
	return info, nil
}

// FinishProgram marks a program as finished.
func (s *Service) FinishProgram(ctx context.Context, id int64) error {
	program, err := s.repo.GetProgram(ctx, nil, id)
	if err != nil {
		return err
	}
	program.IsFinished = true
	return s.repo.UpdateProgram(ctx, nil, program)
}

// normalizeProgram applies the category/team rules to a program before it is
// persisted.
func (s *Service) normalizeProgram(program *eventdb.Program) error {
	if !program.Category.Valid() {
		return &InvalidProgramError{Reason: fmt.Sprintf("unknown category %q", program.Category)}
	}

	// hs/hss programs are forced individual; this matches how organizers
	// expect school-category items to behave regardless of what the request
	// asked for.
	if program.Category.IndividualOnly() {
		program.IsTeamBased = false
		program.TeamSize = nil
	}

	if program.IsTeamBased {
		if program.TeamSize == nil || *program.TeamSize <= 0 {
			return &InvalidProgramError{Reason: fmt.Sprintf("team-based program %q must specify a team size", program.Name)}
		}
	} else {
		program.TeamSize = nil
	}

	if program.MaxParticipants != nil && *program.MaxParticipants <= 0 {
		return &InvalidProgramError{Reason: "max_participants must be positive"}
	}
	if program.MaxParticipantsPerTeam != nil && *program.MaxParticipantsPerTeam <= 0 {
		return &InvalidProgramError{Reason: "max_participants_per_team must be positive"}
	}

	if program.StartTime != nil && program.EndTime != nil && !program.StartTime.Before(*program.EndTime) {
		return &InvalidProgramError{Reason: "end time must be after start time"}
	}
	return nil
}
