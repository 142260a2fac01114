package competitionservice

import (
	"context"
	"sort"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// FakeCompetitionRepository is an in-memory competitiondb.Repository for unit
// tests. Trace records mutating calls so cascade ordering can be asserted.
type FakeCompetitionRepository struct {
	Assignments map[int64]*competitiondb.ProgramAssignment
	Chest       map[int64]*competitiondb.ChestNumber
	Results     map[int64]*competitiondb.ProgramResult
	Names       map[int64]string // participant id -> name, for ranking rows
	Programs    map[int64]*sharedtypes.ProgramInfo
	Trace       []string

	nextAssignmentID int64
	nextChestID      int64
	nextResultID     int64
}

var _ competitiondb.Repository = (*FakeCompetitionRepository)(nil)

func NewFakeCompetitionRepository() *FakeCompetitionRepository {
	return &FakeCompetitionRepository{
		Assignments: make(map[int64]*competitiondb.ProgramAssignment),
		Chest:       make(map[int64]*competitiondb.ChestNumber),
		Results:     make(map[int64]*competitiondb.ProgramResult),
		Names:       make(map[int64]string),
		Programs:    make(map[int64]*sharedtypes.ProgramInfo),
	}
}

func (f *FakeCompetitionRepository) CreateAssignment(_ context.Context, _ bun.IDB, assignment *competitiondb.ProgramAssignment) error {
	f.Trace = append(f.Trace, "CreateAssignment")
	for _, existing := range f.Assignments {
		if existing.ProgramID == assignment.ProgramID && existing.StudentID == assignment.StudentID {
			return competitiondb.ErrDuplicateAssignment
		}
	}
	f.nextAssignmentID++
	assignment.ID = f.nextAssignmentID
	copied := *assignment
	f.Assignments[assignment.ID] = &copied
	return nil
}

func (f *FakeCompetitionRepository) GetAssignment(_ context.Context, _ bun.IDB, programID, studentID int64) (*competitiondb.ProgramAssignment, error) {
	for _, a := range f.Assignments {
		if a.ProgramID == programID && a.StudentID == studentID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeCompetitionRepository) ListAssignmentsForProgram(_ context.Context, _ bun.IDB, programID int64) ([]competitiondb.ProgramAssignment, error) {
	var out []competitiondb.ProgramAssignment
	for _, a := range f.Assignments {
		if a.ProgramID == programID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChestNumber < out[j].ChestNumber })
	return out, nil
}

func (f *FakeCompetitionRepository) ListCallingSheetRows(ctx context.Context, db bun.IDB, programID int64) ([]competitiondb.CallingSheetRow, error) {
	assignments, _ := f.ListAssignmentsForProgram(ctx, db, programID)
	rows := make([]competitiondb.CallingSheetRow, len(assignments))
	for i, a := range assignments {
		rows[i] = competitiondb.CallingSheetRow{
			AssignmentID: a.ID,
			StudentID:    a.StudentID,
			StudentName:  f.Names[a.StudentID],
			TeamID:       a.TeamID,
			ChestNumber:  a.ChestNumber,
		}
	}
	return rows, nil
}

func (f *FakeCompetitionRepository) CountAssignmentsForTeam(_ context.Context, _ bun.IDB, programID int64, teamID *int64) (int, error) {
	count := 0
	for _, a := range f.Assignments {
		if a.ProgramID == programID && sameScope(a.TeamID, teamID) {
			count++
		}
	}
	return count, nil
}

func (f *FakeCompetitionRepository) ClearStudentEventNumbers(_ context.Context, _ bun.IDB, eventID, studentID int64) error {
	f.Trace = append(f.Trace, "ClearStudentEventNumbers")
	for _, a := range f.Assignments {
		if a.EventID == eventID && a.StudentID == studentID {
			a.ChestNumber = 0
		}
	}
	for id, c := range f.Chest {
		if c.EventID == eventID && c.StudentID == studentID {
			delete(f.Chest, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteAssignmentsForTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	f.Trace = append(f.Trace, "DeleteAssignmentsForTeam")
	for id, a := range f.Assignments {
		if a.TeamID != nil && *a.TeamID == teamID {
			delete(f.Assignments, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteAssignmentsForEvent(_ context.Context, _ bun.IDB, eventID int64) error {
	f.Trace = append(f.Trace, "DeleteAssignmentsForEvent")
	for id, a := range f.Assignments {
		if a.EventID == eventID {
			delete(f.Assignments, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteAssignmentsForProgram(_ context.Context, _ bun.IDB, programID int64) error {
	f.Trace = append(f.Trace, "DeleteAssignmentsForProgram")
	for id, a := range f.Assignments {
		if a.ProgramID == programID {
			delete(f.Assignments, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) GetChestNumber(_ context.Context, _ bun.IDB, eventID, studentID int64) (*competitiondb.ChestNumber, error) {
	for _, c := range f.Chest {
		if c.EventID == eventID && c.StudentID == studentID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeCompetitionRepository) UpsertChestNumber(_ context.Context, _ bun.IDB, chest *competitiondb.ChestNumber) error {
	f.Trace = append(f.Trace, "UpsertChestNumber")
	for _, existing := range f.Chest {
		if existing.EventID == chest.EventID && existing.StudentID == chest.StudentID {
			existing.TeamID = chest.TeamID
			existing.Number = chest.Number
			existing.AssignedBy = chest.AssignedBy
			return nil
		}
	}
	f.nextChestID++
	chest.ID = f.nextChestID
	copied := *chest
	f.Chest[chest.ID] = &copied
	return nil
}

func (f *FakeCompetitionRepository) MaxChestNumberInRange(_ context.Context, _ bun.IDB, eventID int64, teamID *int64, low, high int) (int, error) {
	max := 0
	inRange := func(n int, scope *int64) bool {
		if n < low || (high > 0 && n >= high) {
			return false
		}
		return sameScope(scope, teamID)
	}
	for _, a := range f.Assignments {
		if a.EventID == eventID && inRange(a.ChestNumber, a.TeamID) && a.ChestNumber > max {
			max = a.ChestNumber
		}
	}
	for _, c := range f.Chest {
		if c.EventID == eventID && inRange(c.Number, c.TeamID) && c.Number > max {
			max = c.Number
		}
	}
	return max, nil
}

func (f *FakeCompetitionRepository) LockAllocationScope(_ context.Context, _ bun.IDB, _ int64, _ *int64) error {
	return nil
}

func (f *FakeCompetitionRepository) DeleteChestNumbersForTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	f.Trace = append(f.Trace, "DeleteChestNumbersForTeam")
	for id, c := range f.Chest {
		if c.TeamID != nil && *c.TeamID == teamID {
			delete(f.Chest, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteChestNumbersForEvent(_ context.Context, _ bun.IDB, eventID int64) error {
	f.Trace = append(f.Trace, "DeleteChestNumbersForEvent")
	for id, c := range f.Chest {
		if c.EventID == eventID {
			delete(f.Chest, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) CreateResult(_ context.Context, _ bun.IDB, result *competitiondb.ProgramResult) error {
	f.Trace = append(f.Trace, "CreateResult")
	for _, existing := range f.Results {
		if existing.ProgramID == result.ProgramID && existing.ParticipantID == result.ParticipantID {
			return competitiondb.ErrDuplicateResult
		}
	}
	f.nextResultID++
	result.ID = f.nextResultID
	copied := *result
	f.Results[result.ID] = &copied
	return nil
}

func (f *FakeCompetitionRepository) GetResult(_ context.Context, _ bun.IDB, programID, participantID int64) (*competitiondb.ProgramResult, error) {
	for _, r := range f.Results {
		if r.ProgramID == programID && r.ParticipantID == participantID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeCompetitionRepository) ListResultsForProgram(_ context.Context, _ bun.IDB, programID int64) ([]competitiondb.ProgramResult, error) {
	var out []competitiondb.ProgramResult
	for _, r := range f.Results {
		if r.ProgramID == programID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return deref(out[i].AverageMarks) > deref(out[j].AverageMarks)
	})
	return out, nil
}

func (f *FakeCompetitionRepository) ListRankingRows(_ context.Context, _ bun.IDB, programID int64) ([]competitiondb.RankingRow, error) {
	var rows []competitiondb.RankingRow
	ids := make([]int64, 0, len(f.Results))
	for id := range f.Results {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r := f.Results[id]
		if r.ProgramID != programID || r.AverageMarks == nil {
			continue
		}
		rows = append(rows, competitiondb.RankingRow{
			ResultID:        r.ID,
			ParticipantID:   r.ParticipantID,
			ParticipantName: f.Names[r.ParticipantID],
			TeamID:          r.TeamID,
			TotalMarks:      r.TotalMarks,
			AverageMarks:    r.AverageMarks,
		})
	}
	return rows, nil
}

func (f *FakeCompetitionRepository) UpdateResult(_ context.Context, _ bun.IDB, result *competitiondb.ProgramResult) error {
	f.Trace = append(f.Trace, "UpdateResult")
	existing, ok := f.Results[result.ID]
	if !ok {
		return competitiondb.ErrNoRowsAffected
	}
	position, points := existing.Position, existing.PointsEarned
	copied := *result
	copied.Position, copied.PointsEarned = position, points
	f.Results[result.ID] = &copied
	return nil
}

func (f *FakeCompetitionRepository) BulkUpdatePositions(_ context.Context, _ bun.IDB, updates []competitiondb.PositionUpdate) error {
	f.Trace = append(f.Trace, "BulkUpdatePositions")
	for _, u := range updates {
		if r, ok := f.Results[u.ResultID]; ok {
			r.Position = u.Position
			r.PointsEarned = u.Points
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) MaxResultNumberForEvent(_ context.Context, _ bun.IDB, eventID int64) (int, error) {
	max := 0
	for _, r := range f.Results {
		if r.EventID == eventID && r.ResultNumber != nil && *r.ResultNumber > max {
			max = *r.ResultNumber
		}
	}
	return max, nil
}

func (f *FakeCompetitionRepository) ResultNumberForProgram(_ context.Context, _ bun.IDB, programID int64) (*int, error) {
	for _, r := range f.Results {
		if r.ProgramID == programID && r.ResultNumber != nil {
			n := *r.ResultNumber
			return &n, nil
		}
	}
	return nil, nil
}

func (f *FakeCompetitionRepository) ListPositiveResultRows(_ context.Context, _ bun.IDB) ([]competitiondb.ResultPointsRow, error) {
	var rows []competitiondb.ResultPointsRow
	for _, r := range f.Results {
		if r.PointsEarned <= 0 {
			continue
		}
		teamBased := false
		if p, ok := f.Programs[r.ProgramID]; ok {
			teamBased = p.IsTeamBased
		}
		rows = append(rows, competitiondb.ResultPointsRow{
			EventID:       r.EventID,
			ParticipantID: r.ParticipantID,
			TeamID:        r.TeamID,
			PointsEarned:  r.PointsEarned,
			IsTeamBased:   teamBased,
		})
	}
	return rows, nil
}

func (f *FakeCompetitionRepository) DeleteResultsForTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	f.Trace = append(f.Trace, "DeleteResultsForTeam")
	for id, r := range f.Results {
		if r.TeamID != nil && *r.TeamID == teamID {
			delete(f.Results, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteResultsForEvent(_ context.Context, _ bun.IDB, eventID int64) error {
	f.Trace = append(f.Trace, "DeleteResultsForEvent")
	for id, r := range f.Results {
		if r.EventID == eventID {
			delete(f.Results, id)
		}
	}
	return nil
}

func (f *FakeCompetitionRepository) DeleteResultsForProgram(_ context.Context, _ bun.IDB, programID int64) error {
	f.Trace = append(f.Trace, "DeleteResultsForProgram")
	for id, r := range f.Results {
		if r.ProgramID == programID {
			delete(f.Results, id)
		}
	}
	return nil
}

// FakeRoster implements RosterReader over fixed maps.
type FakeRoster struct {
	Students map[int64]*sharedtypes.StudentInfo
	Teams    map[int64]*sharedtypes.TeamInfo
}

func NewFakeRoster() *FakeRoster {
	return &FakeRoster{
		Students: make(map[int64]*sharedtypes.StudentInfo),
		Teams:    make(map[int64]*sharedtypes.TeamInfo),
	}
}

func (f *FakeRoster) StudentInfo(_ context.Context, _ bun.IDB, id int64) (*sharedtypes.StudentInfo, error) {
	student, ok := f.Students[id]
	if !ok {
		return nil, competitiondb.ErrNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *FakeRoster) TeamInfo(_ context.Context, _ bun.IDB, id int64) (*sharedtypes.TeamInfo, error) {
	team, ok := f.Teams[id]
	if !ok {
		return nil, competitiondb.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *FakeRoster) TeamCount(_ context.Context, _ bun.IDB) (int, error) {
	return len(f.Teams), nil
}

func (f *FakeRoster) SetStudentChestCode(_ context.Context, _ bun.IDB, id int64, code string) error {
	if student, ok := f.Students[id]; ok {
		student.ChestCode = code
	}
	return nil
}

// FakePrograms implements ProgramReader over a fixed map.
type FakePrograms struct {
	Programs map[int64]*sharedtypes.ProgramInfo
}

func (f *FakePrograms) ProgramInfo(_ context.Context, _ bun.IDB, id int64) (*sharedtypes.ProgramInfo, error) {
	program, ok := f.Programs[id]
	if !ok {
		return nil, competitiondb.ErrNotFound
	}
	copied := *program
	return &copied, nil
}

// FakeAwarder records every point award.
type FakeAwarder struct {
	Awards []sharedtypes.PointAward
}

func (f *FakeAwarder) Award(_ context.Context, _ bun.IDB, award sharedtypes.PointAward) error {
	f.Awards = append(f.Awards, award)
	return nil
}
