package competitionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// teamRangeWidth is the size of each team's chest-number block: team N owns
// [N*100, N*100+100).
const teamRangeWidth = 100

// allocateChestNumber hands out the chest number for a student entering an
// event. Idempotent per (event, student): an existing mirror record for the
// same team scope is reused. Team members draw from their team's block;
// unaffiliated students draw from the open pool above every team block. Must
// run inside the assignment transaction, after LockAllocationScope.
func (s *Service) allocateChestNumber(ctx context.Context, tx bun.IDB, eventID int64, student *sharedtypes.StudentInfo, team *sharedtypes.TeamInfo, assignedBy string) (int, error) {
	var teamID *int64
	if team != nil {
		teamID = &team.ID
	}

	existing, err := s.repo.GetChestNumber(ctx, tx, eventID, student.ID)
	switch {
	case err == nil:
		if sameScope(existing.TeamID, teamID) && existing.Number > 0 {
			return existing.Number, nil
		}
		// team changed since the number was handed out: wipe the stale
		// facts and fall through to a fresh allocation
		if err := s.repo.ClearStudentEventNumbers(ctx, tx, eventID, student.ID); err != nil {
			return 0, err
		}
	case errors.Is(err, competitiondb.ErrNotFound):
	default:
		return 0, err
	}

	low, high, err := s.allocationRange(ctx, tx, team)
	if err != nil {
		return 0, err
	}

	max, err := s.repo.MaxChestNumberInRange(ctx, tx, eventID, teamID, low, high)
	if err != nil {
		return 0, err
	}
	number := low
	if max >= low {
		number = max + 1
	}
	if high > 0 && number >= high {
		return 0, fmt.Errorf("chest number range [%d, %d) exhausted for event %d", low, high, eventID)
	}

	if err := s.repo.UpsertChestNumber(ctx, tx, &competitiondb.ChestNumber{
		EventID:    eventID,
		StudentID:  student.ID,
		TeamID:     teamID,
		Number:     number,
		AssignedBy: assignedBy,
	}); err != nil {
		return 0, err
	}

	if student.ChestCode == "" {
		code := fmt.Sprintf("CHEST%04d", number)
		if err := s.roster.SetStudentChestCode(ctx, tx, student.ID, code); err != nil {
			return 0, err
		}
	}
	return number, nil
}

// allocationRange computes the [low, high) pool for a team scope. The open
// pool starts one block above the last possible team block and is unbounded.
func (s *Service) allocationRange(ctx context.Context, tx bun.IDB, team *sharedtypes.TeamInfo) (int, int, error) {
	if team != nil {
		low := team.Number * teamRangeWidth
		return low, low + teamRangeWidth, nil
	}
	teamCount, err := s.roster.TeamCount(ctx, tx)
	if err != nil {
		return 0, 0, err
	}
	return (teamCount + 1) * teamRangeWidth, 0, nil
}

func sameScope(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
