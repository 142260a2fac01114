package pointsservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// ErrNoRecipient is returned when an award names neither a team nor a
// student.
var ErrNoRecipient = errors.New("point award has no recipient")

// ErrInvalidPointType is returned for awards with an unknown point type.
var ErrInvalidPointType = errors.New("invalid point type")

// Award upserts one ledger fact keyed by (recipient, event, point_type,
// reason) and refreshes the recipient's cached total. Joins the caller's
// transaction when db is non-nil; ranking recomputation calls it once per
// scoring row, so re-running the same ranking never duplicates facts.
func (s *Service) Award(ctx context.Context, db bun.IDB, award sharedtypes.PointAward) error {
	if award.TeamID == nil && award.StudentID == nil {
		return ErrNoRecipient
	}
	if !award.PointType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPointType, award.PointType)
	}

	key := pointsdb.RecordKey{
		TeamID:    award.TeamID,
		StudentID: award.StudentID,
		EventID:   award.EventID,
		PointType: award.PointType,
		Reason:    award.Reason,
	}
	existing, err := s.repo.FindRecord(ctx, db, key)
	switch {
	case err == nil:
		if err := s.repo.UpdateRecord(ctx, db, existing.ID, award.Points, award.Description, award.AwardedBy); err != nil {
			return err
		}
	case errors.Is(err, pointsdb.ErrNotFound):
		record := &pointsdb.PointsRecord{
			TeamID:      award.TeamID,
			StudentID:   award.StudentID,
			EventID:     award.EventID,
			Points:      award.Points,
			PointType:   award.PointType,
			Reason:      award.Reason,
			Description: award.Description,
			AwardedBy:   award.AwardedBy,
		}
		if err := s.repo.CreateRecord(ctx, db, record); err != nil {
			return err
		}
	default:
		return err
	}

	s.metrics.PointsUpserts.Inc()
	return s.refreshTotals(ctx, db, award.TeamID, award.StudentID)
}

// refreshTotals recomputes cached totals from the sum of facts for the given
// recipients.
func (s *Service) refreshTotals(ctx context.Context, db bun.IDB, teamID, studentID *int64) error {
	if teamID != nil {
		total, err := s.repo.SumPointsForTeam(ctx, db, *teamID)
		if err != nil {
			return err
		}
		if err := s.totals.UpdateTeamPoints(ctx, db, *teamID, total); err != nil {
			return err
		}
	}
	if studentID != nil {
		total, err := s.repo.SumPointsForStudent(ctx, db, *studentID)
		if err != nil {
			return err
		}
		if err := s.totals.UpdateStudentPoints(ctx, db, *studentID, total); err != nil {
			return err
		}
	}
	return nil
}

// AwardManual records an admin bonus or penalty in its own transaction.
// Penalties carry negative points.
func (s *Service) AwardManual(ctx context.Context, award sharedtypes.PointAward) (err error) {
	defer func(start time.Time) { s.observe(ctx, "AwardManual", err, start) }(time.Now())

	if award.PointType != sharedtypes.PointTypeManualBonus &&
		award.PointType != sharedtypes.PointTypeManualPenalty &&
		award.PointType != sharedtypes.PointTypeAchievement {
		return fmt.Errorf("%w: %q is not a manual type", ErrInvalidPointType, award.PointType)
	}

	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		return s.Award(ctx, tx, award)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "manual points awarded",
		slog.Int64("event_id", award.EventID),
		slog.String("point_type", string(award.PointType)),
		slog.Int("points", award.Points),
	)
	return nil
}

// ListRecordsForEvent returns an event's ledger facts, newest first.
func (s *Service) ListRecordsForEvent(ctx context.Context, eventID int64) ([]pointsdb.PointsRecord, error) {
	return s.repo.ListRecordsForEvent(ctx, nil, eventID)
}

// ListRecordsForTeam returns a team's ledger facts, newest first.
func (s *Service) ListRecordsForTeam(ctx context.Context, teamID int64) ([]pointsdb.PointsRecord, error) {
	return s.repo.ListRecordsForTeam(ctx, nil, teamID)
}

// TopPerformers ranks students by their point sum within an event.
func (s *Service) TopPerformers(ctx context.Context, eventID int64, limit int) ([]pointsdb.TopPerformerRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopPerformersForEvent(ctx, nil, eventID, limit)
}

// DeleteForTeam drops a team's ledger facts. Called from the team-deletion
// cascade; the team row itself is about to go, so only the facts are removed.
func (s *Service) DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	return s.repo.DeleteRecordsForTeam(ctx, db, teamID)
}

// DeleteForEvent drops an event's ledger facts and refreshes the cached
// totals of every recipient that lost records.
func (s *Service) DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	recipients, err := s.repo.RecipientsForEvent(ctx, db, eventID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRecordsForEvent(ctx, db, eventID); err != nil {
		return err
	}
	for _, teamID := range recipients.TeamIDs {
		id := teamID
		if err := s.refreshTotals(ctx, db, &id, nil); err != nil {
			return err
		}
	}
	for _, studentID := range recipients.StudentIDs {
		id := studentID
		if err := s.refreshTotals(ctx, db, nil, &id); err != nil {
			return err
		}
	}
	return nil
}
