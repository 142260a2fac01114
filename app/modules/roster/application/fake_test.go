package rosterservice

import (
	"context"
	"sort"

	"github.com/uptrace/bun"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
)

// FakeRosterRepository is an in-memory rosterdb.Repository for unit tests.
// Trace records the order of mutating calls so cascade ordering can be
// asserted.
type FakeRosterRepository struct {
	Teams    map[int64]*rosterdb.Team
	Students map[int64]*rosterdb.Student
	Trace    []string

	nextTeamID    int64
	nextStudentID int64

	CreateTeamFunc    func(ctx context.Context, team *rosterdb.Team) error
	CreateStudentFunc func(ctx context.Context, student *rosterdb.Student) error
}

var _ rosterdb.Repository = (*FakeRosterRepository)(nil)

func NewFakeRosterRepository() *FakeRosterRepository {
	return &FakeRosterRepository{
		Teams:    make(map[int64]*rosterdb.Team),
		Students: make(map[int64]*rosterdb.Student),
	}
}

func (f *FakeRosterRepository) CreateTeam(ctx context.Context, _ bun.IDB, team *rosterdb.Team) error {
	f.Trace = append(f.Trace, "CreateTeam")
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, team)
	}
	for _, existing := range f.Teams {
		if existing.Name == team.Name {
			return rosterdb.ErrDuplicateTeamName
		}
	}
	f.nextTeamID++
	team.ID = f.nextTeamID
	copied := *team
	f.Teams[team.ID] = &copied
	return nil
}

func (f *FakeRosterRepository) GetTeam(_ context.Context, _ bun.IDB, id int64) (*rosterdb.Team, error) {
	team, ok := f.Teams[id]
	if !ok {
		return nil, rosterdb.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *FakeRosterRepository) ListTeams(_ context.Context, _ bun.IDB) ([]rosterdb.Team, error) {
	teams := make([]rosterdb.Team, 0, len(f.Teams))
	for _, team := range f.Teams {
		teams = append(teams, *team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamNumber < teams[j].TeamNumber })
	return teams, nil
}

func (f *FakeRosterRepository) CountTeams(_ context.Context, _ bun.IDB) (int, error) {
	return len(f.Teams), nil
}

func (f *FakeRosterRepository) MaxTeamNumber(_ context.Context, _ bun.IDB) (int, error) {
	max := 0
	for _, team := range f.Teams {
		if team.TeamNumber > max {
			max = team.TeamNumber
		}
	}
	return max, nil
}

func (f *FakeRosterRepository) TeamUsernameExists(_ context.Context, _ bun.IDB, username string) (bool, error) {
	for _, team := range f.Teams {
		if team.TeamUsername == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRosterRepository) GetTeamByUsername(_ context.Context, _ bun.IDB, username string) (*rosterdb.Team, error) {
	for _, team := range f.Teams {
		if team.TeamUsername == username {
			copied := *team
			return &copied, nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (f *FakeRosterRepository) ResetTeamNumbering(_ context.Context, _ bun.IDB) error {
	f.Trace = append(f.Trace, "ResetTeamNumbering")
	ids := make([]int64, 0, len(f.Teams))
	for id := range f.Teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		f.Teams[id].TeamNumber = i + 1
	}
	return nil
}

func (f *FakeRosterRepository) DeleteTeam(_ context.Context, _ bun.IDB, id int64) error {
	f.Trace = append(f.Trace, "DeleteTeam")
	if _, ok := f.Teams[id]; !ok {
		return rosterdb.ErrNotFound
	}
	delete(f.Teams, id)
	return nil
}

func (f *FakeRosterRepository) UpdateTeamPoints(_ context.Context, _ bun.IDB, id int64, total int) error {
	team, ok := f.Teams[id]
	if !ok {
		return rosterdb.ErrNotFound
	}
	team.PointsEarned = total
	return nil
}

func (f *FakeRosterRepository) CreateStudent(ctx context.Context, _ bun.IDB, student *rosterdb.Student) error {
	f.Trace = append(f.Trace, "CreateStudent")
	if f.CreateStudentFunc != nil {
		return f.CreateStudentFunc(ctx, student)
	}
	for _, existing := range f.Students {
		if existing.StudentID == student.StudentID && existing.Category == student.Category {
			return rosterdb.ErrDuplicateStudentID
		}
	}
	f.nextStudentID++
	student.ID = f.nextStudentID
	copied := *student
	f.Students[student.ID] = &copied
	return nil
}

func (f *FakeRosterRepository) GetStudent(_ context.Context, _ bun.IDB, id int64) (*rosterdb.Student, error) {
	student, ok := f.Students[id]
	if !ok {
		return nil, rosterdb.ErrNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *FakeRosterRepository) ListStudents(_ context.Context, _ bun.IDB) ([]rosterdb.Student, error) {
	students := make([]rosterdb.Student, 0, len(f.Students))
	for _, student := range f.Students {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (f *FakeRosterRepository) ListTeamMembers(_ context.Context, _ bun.IDB, teamID int64) ([]rosterdb.Student, error) {
	var members []rosterdb.Student
	for _, student := range f.Students {
		if student.TeamID != nil && *student.TeamID == teamID {
			members = append(members, *student)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (f *FakeRosterRepository) UpdateStudentTeam(_ context.Context, _ bun.IDB, studentID int64, teamID *int64) error {
	student, ok := f.Students[studentID]
	if !ok {
		return rosterdb.ErrNotFound
	}
	student.TeamID = teamID
	return nil
}

func (f *FakeRosterRepository) DetachStudentsFromTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	f.Trace = append(f.Trace, "DetachStudentsFromTeam")
	for _, student := range f.Students {
		if student.TeamID != nil && *student.TeamID == teamID {
			student.TeamID = nil
			student.ChestCode = ""
		}
	}
	return nil
}

func (f *FakeRosterRepository) UpdateStudentPoints(_ context.Context, _ bun.IDB, id int64, total int) error {
	student, ok := f.Students[id]
	if !ok {
		return rosterdb.ErrNotFound
	}
	student.TotalPoints = total
	return nil
}

func (f *FakeRosterRepository) UpdateStudentChestCode(_ context.Context, _ bun.IDB, id int64, code string) error {
	student, ok := f.Students[id]
	if !ok {
		return rosterdb.ErrNotFound
	}
	student.ChestCode = code
	return nil
}

// FakeCleaner records the team ids it was asked to clean up.
type FakeCleaner struct {
	Calls []int64
	Err   error
	Trace *[]string
	Label string
}

func (f *FakeCleaner) DeleteForTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	if f.Trace != nil {
		*f.Trace = append(*f.Trace, f.Label)
	}
	f.Calls = append(f.Calls, teamID)
	return f.Err
}
