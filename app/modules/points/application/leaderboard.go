package pointsservice

import (
	"context"
	"sort"
	"time"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// NamesReader resolves recipient display names for leaderboard output.
type NamesReader interface {
	TeamNames(ctx context.Context, db bun.IDB) (map[int64]string, error)
	StudentNames(ctx context.Context, db bun.IDB) (map[int64]string, error)
}

// TeamStanding is one row of the global team leaderboard.
type TeamStanding struct {
	Rank         int     `json:"rank"`
	TeamID       int64   `json:"team_id"`
	Name         string  `json:"name"`
	GlobalPoints float64 `json:"global_points"`
}

// StudentStanding is one row of the global student leaderboard.
type StudentStanding struct {
	Rank         int     `json:"rank"`
	StudentID    int64   `json:"student_id"`
	Name         string  `json:"name"`
	GlobalPoints float64 `json:"global_points"`
}

// Leaderboard is the cross-event standings under percentage normalization.
type Leaderboard struct {
	Teams    []TeamStanding    `json:"teams"`
	Students []StudentStanding `json:"students"`
}

// GlobalLeaderboard computes the cross-event standings. Each event's raw
// points are normalized to a percentage of that event's total, and the
// percentages are summed across events, so dominating many events can push a
// recipient past 100. Students score from individual programs only. Ties are
// broken by recipient id ascending so the order is reproducible.
func (s *Service) GlobalLeaderboard(ctx context.Context, names NamesReader) (_ *Leaderboard, err error) {
	defer func(start time.Time) { s.observe(ctx, "GlobalLeaderboard", err, start) }(time.Now())

	facts, err := s.results.EventPointsFacts(ctx, nil)
	if err != nil {
		return nil, err
	}

	teamGlobal, studentGlobal := Normalize(facts)

	teamNames, err := names.TeamNames(ctx, nil)
	if err != nil {
		return nil, err
	}
	studentNames, err := names.StudentNames(ctx, nil)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{}
	for teamID, points := range teamGlobal {
		board.Teams = append(board.Teams, TeamStanding{
			TeamID:       teamID,
			Name:         teamNames[teamID],
			GlobalPoints: points,
		})
	}
	sort.Slice(board.Teams, func(i, j int) bool {
		a, b := board.Teams[i], board.Teams[j]
		if a.GlobalPoints != b.GlobalPoints {
			return a.GlobalPoints > b.GlobalPoints
		}
		return a.TeamID < b.TeamID
	})
	for i := range board.Teams {
		board.Teams[i].Rank = i + 1
	}

	for studentID, points := range studentGlobal {
		board.Students = append(board.Students, StudentStanding{
			StudentID:    studentID,
			Name:         studentNames[studentID],
			GlobalPoints: points,
		})
	}
	sort.Slice(board.Students, func(i, j int) bool {
		a, b := board.Students[i], board.Students[j]
		if a.GlobalPoints != b.GlobalPoints {
			return a.GlobalPoints > b.GlobalPoints
		}
		return a.StudentID < b.StudentID
	})
	for i := range board.Students {
		board.Students[i].Rank = i + 1
	}

	return board, nil
}

// Normalize turns positive-points result facts into per-recipient sums of
// event percentages. Pure: feeds GlobalLeaderboard and its tests.
func Normalize(facts []sharedtypes.EventPointsFact) (teams, students map[int64]float64) {
	type eventBucket struct {
		total    int
		teams    map[int64]int
		students map[int64]int
	}
	events := make(map[int64]*eventBucket)
	for _, fact := range facts {
		if fact.Points <= 0 {
			continue
		}
		bucket, ok := events[fact.EventID]
		if !ok {
			bucket = &eventBucket{teams: make(map[int64]int), students: make(map[int64]int)}
			events[fact.EventID] = bucket
		}
		bucket.total += fact.Points
		if fact.TeamID != nil {
			bucket.teams[*fact.TeamID] += fact.Points
		}
		if !fact.IsTeamBased {
			bucket.students[fact.ParticipantID] += fact.Points
		}
	}

	teams = make(map[int64]float64)
	students = make(map[int64]float64)
	for _, bucket := range events {
		if bucket.total <= 0 {
			continue
		}
		for teamID, points := range bucket.teams {
			teams[teamID] += float64(points) / float64(bucket.total) * 100
		}
		for studentID, points := range bucket.students {
			students[studentID] += float64(points) / float64(bucket.total) * 100
		}
	}
	return teams, students
}
