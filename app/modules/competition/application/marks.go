package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
)

// EnterMarksInput carries one judge-mark entry. Marks arrive as raw strings;
// anything unparseable counts as absent rather than failing the entry.
type EnterMarksInput struct {
	ProgramID     int64
	ParticipantID int64
	Judge1        string
	Judge2        string
	Judge3        string
	Comments      string
	EnteredBy     string
}

// EnterMarks records judge marks for a participant and recomputes the whole
// program's rankings and point awards in the same transaction. Creates the
// result row on first entry.
func (s *Service) EnterMarks(ctx context.Context, input EnterMarksInput) (_ *competitiondb.ProgramResult, err error) {
	defer func(start time.Time) { s.observe(ctx, "EnterMarks", err, start) }(time.Now())

	var result *competitiondb.ProgramResult
	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		program, err := s.programs.ProgramInfo(ctx, tx, input.ProgramID)
		if err != nil {
			return err
		}
		student, err := s.roster.StudentInfo(ctx, tx, input.ParticipantID)
		if err != nil {
			return err
		}

		created := false
		result, err = s.repo.GetResult(ctx, tx, program.ID, student.ID)
		if err != nil {
			if !errors.Is(err, competitiondb.ErrNotFound) {
				return err
			}
			created = true
			result = &competitiondb.ProgramResult{
				ProgramID:     program.ID,
				EventID:       program.EventID,
				ParticipantID: student.ID,
				TeamID:        student.TeamID,
			}
		}
		if result.TeamID == nil {
			result.TeamID = student.TeamID
		}

		result.Judge1Marks = coerceMark(input.Judge1)
		result.Judge2Marks = coerceMark(input.Judge2)
		result.Judge3Marks = coerceMark(input.Judge3)
		result.TotalMarks, result.AverageMarks = Aggregate(result.Judge1Marks, result.Judge2Marks, result.Judge3Marks)
		if input.Comments != "" {
			result.Comments = input.Comments
		}
		result.EnteredBy = input.EnteredBy

		if result.ResultNumber == nil && HasMarks(result.Judge1Marks, result.Judge2Marks, result.Judge3Marks) {
			number, err := s.nextResultNumber(ctx, tx, program.ID, program.EventID)
			if err != nil {
				return err
			}
			result.ResultNumber = &number
		}

		if created {
			if err := s.repo.CreateResult(ctx, tx, result); err != nil {
				return err
			}
		} else {
			if err := s.repo.UpdateResult(ctx, tx, result); err != nil {
				return err
			}
		}

		return s.recomputeRankings(ctx, tx, program, input.EnteredBy)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "marks entered",
		slog.Int64("program_id", input.ProgramID),
		slog.Int64("participant_id", input.ParticipantID),
	)
	return result, nil
}

// nextResultNumber returns the program's result number, assigning event
// max + 1 when the program has none yet. All results in a program share the
// number.
func (s *Service) nextResultNumber(ctx context.Context, tx bun.IDB, programID, eventID int64) (int, error) {
	existing, err := s.repo.ResultNumberForProgram(ctx, tx, programID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return *existing, nil
	}
	max, err := s.repo.MaxResultNumberForEvent(ctx, tx, eventID)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ListResults returns a program's results, best first.
func (s *Service) ListResults(ctx context.Context, programID int64) ([]competitiondb.ProgramResult, error) {
	return s.repo.ListResultsForProgram(ctx, nil, programID)
}

// Aggregate sums the present judge marks and averages them over the count of
// present marks. Both results are nil when no mark is present.
func Aggregate(j1, j2, j3 *float64) (total, average *float64) {
	var sum float64
	count := 0
	for _, mark := range []*float64{j1, j2, j3} {
		if mark != nil {
			sum += *mark
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / float64(count)
	return &sum, &avg
}

// HasMarks reports whether at least one judge mark is present and strictly
// positive. Gates result-number assignment.
func HasMarks(j1, j2, j3 *float64) bool {
	for _, mark := range []*float64{j1, j2, j3} {
		if mark != nil && *mark > 0 {
			return true
		}
	}
	return false
}

// coerceMark parses a raw judge mark. Blank or unparseable input is treated
// as absent, never as an error.
func coerceMark(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// positionText renders a position the way the points ledger records it.
func positionText(position int) string {
	switch position {
	case 1:
		return "Winner"
	case 2:
		return "Runner-up"
	case 3:
		return "3rd place"
	default:
		return fmt.Sprintf("%dth place", position)
	}
}
