package competitionservice

import (
	"context"
	"fmt"
	"sort"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// RankedRow is one result after the ranking pass.
type RankedRow struct {
	competitiondb.RankingRow
	Position int
	Points   int
}

// Rank orders a program's marked results and assigns positions and points.
// Pure: callers persist the output separately. Sorted by average descending,
// total descending, then participant name ascending so the order is fully
// deterministic. Positions run 1..N with no gaps; rows with equal marks get
// consecutive positions rather than sharing one, matching the established
// scoring behavior.
func Rank(rows []competitiondb.RankingRow, category sharedtypes.Category) []RankedRow {
	ranked := make([]RankedRow, 0, len(rows))
	for _, row := range rows {
		if row.AverageMarks == nil {
			continue
		}
		ranked = append(ranked, RankedRow{RankingRow: row})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if *a.AverageMarks != *b.AverageMarks {
			return *a.AverageMarks > *b.AverageMarks
		}
		at, bt := deref(a.TotalMarks), deref(b.TotalMarks)
		if at != bt {
			return at > bt
		}
		return a.ParticipantName < b.ParticipantName
	})

	for i := range ranked {
		ranked[i].Position = i + 1
		ranked[i].Points = pointsForPosition(category, ranked[i].Position)
	}
	return ranked
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// recomputeRankings re-ranks every marked result of a program, persists the
// positions and points in one bulk pass, and re-awards ledger points for each
// scoring row (team and individual).
func (s *Service) recomputeRankings(ctx context.Context, tx bun.IDB, program *sharedtypes.ProgramInfo, awardedBy string) error {
	rows, err := s.repo.ListRankingRows(ctx, tx, program.ID)
	if err != nil {
		return err
	}
	ranked := Rank(rows, program.Category)

	updates := make([]competitiondb.PositionUpdate, len(ranked))
	for i, row := range ranked {
		updates[i] = competitiondb.PositionUpdate{
			ResultID: row.ResultID,
			Position: row.Position,
			Points:   row.Points,
		}
	}
	if err := s.repo.BulkUpdatePositions(ctx, tx, updates); err != nil {
		return err
	}
	s.metrics.RankingRecomputes.Inc()

	for _, row := range ranked {
		if row.Points <= 0 {
			continue
		}
		pointType := sharedtypes.PointTypeForPosition(row.Position)
		reason := fmt.Sprintf("%s - %s", program.Name, positionText(row.Position))

		if row.TeamID != nil {
			teamID := *row.TeamID
			if err := s.points.Award(ctx, tx, sharedtypes.PointAward{
				TeamID:      &teamID,
				EventID:     program.EventID,
				PointType:   pointType,
				Points:      row.Points,
				Reason:      reason,
				Description: fmt.Sprintf("Points earned by %s in %s", row.ParticipantName, program.Name),
				AwardedBy:   awardedBy,
			}); err != nil {
				return err
			}
		}

		participantID := row.ParticipantID
		if err := s.points.Award(ctx, tx, sharedtypes.PointAward{
			StudentID:   &participantID,
			EventID:     program.EventID,
			PointType:   pointType,
			Points:      row.Points,
			Reason:      reason,
			Description: fmt.Sprintf("Individual points for %s in %s", positionText(row.Position), program.Name),
			AwardedBy:   awardedBy,
		}); err != nil {
			return err
		}
	}
	return nil
}

// cleanup implements the cascade hooks other modules call when a team or an
// event goes away. Order matters: assignments, then results, then chest
// numbers.

func (s *Service) DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error {
	if err := s.repo.DeleteAssignmentsForTeam(ctx, db, teamID); err != nil {
		return err
	}
	if err := s.repo.DeleteResultsForTeam(ctx, db, teamID); err != nil {
		return err
	}
	return s.repo.DeleteChestNumbersForTeam(ctx, db, teamID)
}

func (s *Service) DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	if err := s.repo.DeleteAssignmentsForEvent(ctx, db, eventID); err != nil {
		return err
	}
	if err := s.repo.DeleteResultsForEvent(ctx, db, eventID); err != nil {
		return err
	}
	return s.repo.DeleteChestNumbersForEvent(ctx, db, eventID)
}

// DeleteForProgram clears a single program's assignments and results, for
// program deletion within an event.
func (s *Service) DeleteForProgram(ctx context.Context, db bun.IDB, programID int64) error {
	if err := s.repo.DeleteAssignmentsForProgram(ctx, db, programID); err != nil {
		return err
	}
	return s.repo.DeleteResultsForProgram(ctx, db, programID)
}

// EventPointsFacts feeds the global leaderboard every positive-points result
// across all events.
func (s *Service) EventPointsFacts(ctx context.Context, db bun.IDB) ([]sharedtypes.EventPointsFact, error) {
	rows, err := s.repo.ListPositiveResultRows(ctx, db)
	if err != nil {
		return nil, err
	}
	facts := make([]sharedtypes.EventPointsFact, len(rows))
	for i, row := range rows {
		facts[i] = sharedtypes.EventPointsFact{
			EventID:       row.EventID,
			ParticipantID: row.ParticipantID,
			TeamID:        row.TeamID,
			Points:        row.PointsEarned,
			IsTeamBased:   row.IsTeamBased,
		}
	}
	return facts, nil
}
