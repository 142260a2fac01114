package eventservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// CreateEventInput carries the fields an organizer supplies for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	EventType   string
	StartDate   time.Time
	EndDate     time.Time
	Venue       string
	CreatedBy   string
}

// CreateEvent creates a new event in draft status.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (_ *eventdb.Event, err error) {
	defer func(start time.Time) { s.observe(ctx, "CreateEvent", err, start) }(time.Now())

	event := &eventdb.Event{
		Title:       input.Title,
		Description: input.Description,
		EventType:   input.EventType,
		Status:      sharedtypes.EventStatusDraft,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Venue:       input.Venue,
		CreatedBy:   input.CreatedBy,
	}
	if event.EventType == "" {
		event.EventType = "other"
	}

	if err = s.repo.CreateEvent(ctx, nil, event); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created",
		slog.Int64("event_id", event.ID),
		slog.String("title", event.Title),
	)
	return event, nil
}

// GetEvent returns a single event.
func (s *Service) GetEvent(ctx context.Context, id int64) (*eventdb.Event, error) {
	return s.repo.GetEvent(ctx, nil, id)
}

// ListEvents returns all events, newest first.
func (s *Service) ListEvents(ctx context.Context) ([]eventdb.Event, error) {
	return s.repo.ListEvents(ctx, nil)
}

// TransitionEventStatus moves an event through its lifecycle, rejecting
// illegal transitions.
func (s *Service) TransitionEventStatus(ctx context.Context, id int64, next sharedtypes.EventStatus) (err error) {
	defer func(start time.Time) { s.observe(ctx, "TransitionEventStatus", err, start) }(time.Now())

	event, err := s.repo.GetEvent(ctx, nil, id)
	if err != nil {
		return err
	}
	if !event.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: event.Status, To: next}
	}

	if err = s.repo.UpdateEventStatus(ctx, nil, id, next); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "event status changed",
		slog.Int64("event_id", id),
		slog.String("from", string(event.Status)),
		slog.String("to", string(next)),
	)
	return nil
}

// DeleteEvent removes an event and everything that hangs off it: programs
// (with their assignments and results), announcements, chest numbers and
// points records. Teams survive; they are event-independent.
func (s *Service) DeleteEvent(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe(ctx, "DeleteEvent", err, start) }(time.Now())

	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		if _, err := s.repo.GetEvent(ctx, tx, id); err != nil {
			return err
		}
		if err := s.competition.DeleteForEvent(ctx, tx, id); err != nil {
			return err
		}
		if err := s.points.DeleteForEvent(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteAnnouncementsForEvent(ctx, tx, id); err != nil {
			return err
		}
		programIDs, err := s.repo.ListProgramIDsForEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, programID := range programIDs {
			if err := s.repo.DeleteProgram(ctx, tx, programID); err != nil {
				return err
			}
		}
		return s.repo.DeleteEvent(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "event deleted", slog.Int64("event_id", id))
	return nil
}

// CreateAnnouncement posts an announcement on an event.
func (s *Service) CreateAnnouncement(ctx context.Context, eventID int64, title, message string, important bool, createdBy string) (*eventdb.Announcement, error) {
	if _, err := s.repo.GetEvent(ctx, nil, eventID); err != nil {
		return nil, err
	}
	a := &eventdb.Announcement{
		EventID:     eventID,
		Title:       title,
		Message:     message,
		IsImportant: important,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateAnnouncement(ctx, nil, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnnouncements returns an event's announcements, newest first.
func (s *Service) ListAnnouncements(ctx context.Context, eventID int64) ([]eventdb.Announcement, error) {
	return s.repo.ListAnnouncementsForEvent(ctx, nil, eventID)
}
