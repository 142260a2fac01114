package rosterservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Read accessors for the competition engine and the leaderboard. The db
// handle is forwarded so lookups join the caller's transaction.

func (s *Service) StudentInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.StudentInfo, error) {
	student, err := s.repo.GetStudent(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return &sharedtypes.StudentInfo{
		ID:        student.ID,
		Name:      student.Name,
		Category:  student.Category,
		TeamID:    student.TeamID,
		ChestCode: student.ChestCode,
	}, nil
}

func (s *Service) TeamInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.TeamInfo, error) {
	team, err := s.repo.GetTeam(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return &sharedtypes.TeamInfo{
		ID:     team.ID,
		Name:   team.Name,
		Number: team.TeamNumber,
	}, nil
}

func (s *Service) TeamCount(ctx context.Context, db bun.IDB) (int, error) {
	return s.repo.CountTeams(ctx, db)
}

func (s *Service) SetStudentChestCode(ctx context.Context, db bun.IDB, id int64, code string) error {
	return s.repo.UpdateStudentChestCode(ctx, db, id, code)
}

func (s *Service) TeamNames(ctx context.Context, db bun.IDB) (map[int64]string, error) {
	teams, err := s.repo.ListTeams(ctx, db)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}
	return names, nil
}

func (s *Service) StudentNames(ctx context.Context, db bun.IDB) (map[int64]string, error) {
	students, err := s.repo.ListStudents(ctx, db)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(students))
	for _, student := range students {
		names[student.ID] = student.Name
	}
	return names, nil
}
