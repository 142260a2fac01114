package pointsservice

import (
	"context"
	"sort"

	"github.com/uptrace/bun"

	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// FakePointsRepository is an in-memory pointsdb.Repository for unit tests.
type FakePointsRepository struct {
	Records map[int64]*pointsdb.PointsRecord
	Names   map[int64]string // student id -> name, for top performers

	nextID int64
}

var _ pointsdb.Repository = (*FakePointsRepository)(nil)

func NewFakePointsRepository() *FakePointsRepository {
	return &FakePointsRepository{
		Records: make(map[int64]*pointsdb.PointsRecord),
		Names:   make(map[int64]string),
	}
}

func matchKey(r *pointsdb.PointsRecord, key pointsdb.RecordKey) bool {
	if r.EventID != key.EventID || r.PointType != key.PointType || r.Reason != key.Reason {
		return false
	}
	if !samePtr(r.TeamID, key.TeamID) || !samePtr(r.StudentID, key.StudentID) {
		return false
	}
	return true
}

func samePtr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *FakePointsRepository) FindRecord(_ context.Context, _ bun.IDB, key pointsdb.RecordKey) (*pointsdb.PointsRecord, error) {
	for _, r := range f.Records {
		if matchKey(r, key) {
			copied := *r
			return &copied, nil
		}
	}
	return nil, pointsdb.ErrNotFound
}

func (f *FakePointsRepository) CreateRecord(_ context.Context, _ bun.IDB, record *pointsdb.PointsRecord) error {
	f.nextID++
	record.ID = f.nextID
	copied := *record
	f.Records[record.ID] = &copied
	return nil
}

func (f *FakePointsRepository) UpdateRecord(_ context.Context, _ bun.IDB, id int64, points int, description, awardedBy string) error {
	record, ok := f.Records[id]
	if !ok {
		return pointsdb.ErrNotFound
	}
	record.Points = points
	record.Description = description
	record.AwardedBy = awardedBy
	return nil
}

func (f *FakePointsRepository) SumPointsForTeam(_ context.Context, _ bun.IDB, teamID int64) (int, error) {
	sum := 0
	for _, r := range f.Records {
		if r.TeamID != nil && *r.TeamID == teamID {
			sum += r.Points
		}
	}
	return sum, nil
}

func (f *FakePointsRepository) SumPointsForStudent(_ context.Context, _ bun.IDB, studentID int64) (int, error) {
	sum := 0
	for _, r := range f.Records {
		if r.StudentID != nil && *r.StudentID == studentID {
			sum += r.Points
		}
	}
	return sum, nil
}

func (f *FakePointsRepository) ListRecordsForEvent(_ context.Context, _ bun.IDB, eventID int64) ([]pointsdb.PointsRecord, error) {
	var out []pointsdb.PointsRecord
	for _, r := range f.Records {
		if r.EventID == eventID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakePointsRepository) ListRecordsForTeam(_ context.Context, _ bun.IDB, teamID int64) ([]pointsdb.PointsRecord, error) {
	var out []pointsdb.PointsRecord
	for _, r := range f.Records {
		if r.TeamID != nil && *r.TeamID == teamID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *FakePointsRepository) RecipientsForEvent(_ context.Context, _ bun.IDB, eventID int64) (*pointsdb.EventRecipients, error) {
	recipients := &pointsdb.EventRecipients{}
	seenTeams := make(map[int64]bool)
	seenStudents := make(map[int64]bool)
	for _, r := range f.Records {
		if r.EventID != eventID {
			continue
		}
		if r.TeamID != nil && !seenTeams[*r.TeamID] {
			seenTeams[*r.TeamID] = true
			recipients.TeamIDs = append(recipients.TeamIDs, *r.TeamID)
		}
		if r.StudentID != nil && !seenStudents[*r.StudentID] {
			seenStudents[*r.StudentID] = true
			recipients.StudentIDs = append(recipients.StudentIDs, *r.StudentID)
		}
	}
	sort.Slice(recipients.TeamIDs, func(i, j int) bool { return recipients.TeamIDs[i] < recipients.TeamIDs[j] })
	sort.Slice(recipients.StudentIDs, func(i, j int) bool { return recipients.StudentIDs[i] < recipients.StudentIDs[j] })
	return recipients, nil
}

func (f *FakePointsRepository) TopPerformersForEvent(_ context.Context, _ bun.IDB, eventID int64, limit int) ([]pointsdb.TopPerformerRow, error) {
	sums := make(map[int64]int)
	for _, r := range f.Records {
		if r.EventID == eventID && r.StudentID != nil {
			sums[*r.StudentID] += r.Points
		}
	}
	var rows []pointsdb.TopPerformerRow
	for studentID, points := range sums {
		rows = append(rows, pointsdb.TopPerformerRow{
			StudentID:   studentID,
			StudentName: f.Names[studentID],
			Points:      points,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *FakePointsRepository) DeleteRecordsForTeam(_ context.Context, _ bun.IDB, teamID int64) error {
	for id, r := range f.Records {
		if r.TeamID != nil && *r.TeamID == teamID {
			delete(f.Records, id)
		}
	}
	return nil
}

func (f *FakePointsRepository) DeleteRecordsForEvent(_ context.Context, _ bun.IDB, eventID int64) error {
	for id, r := range f.Records {
		if r.EventID == eventID {
			delete(f.Records, id)
		}
	}
	return nil
}

// FakeTotals records the cached totals pushed by the service.
type FakeTotals struct {
	TeamTotals    map[int64]int
	StudentTotals map[int64]int
}

func NewFakeTotals() *FakeTotals {
	return &FakeTotals{
		TeamTotals:    make(map[int64]int),
		StudentTotals: make(map[int64]int),
	}
}

func (f *FakeTotals) UpdateTeamPoints(_ context.Context, _ bun.IDB, id int64, total int) error {
	f.TeamTotals[id] = total
	return nil
}

func (f *FakeTotals) UpdateStudentPoints(_ context.Context, _ bun.IDB, id int64, total int) error {
	f.StudentTotals[id] = total
	return nil
}

// FakeResults returns a fixed set of event point facts.
type FakeResults struct {
	Facts []sharedtypes.EventPointsFact
}

func (f *FakeResults) EventPointsFacts(_ context.Context, _ bun.IDB) ([]sharedtypes.EventPointsFact, error) {
	return f.Facts, nil
}

// FakeNames resolves recipient names from fixed maps.
type FakeNames struct {
	Teams    map[int64]string
	Students map[int64]string
}

func (f *FakeNames) TeamNames(_ context.Context, _ bun.IDB) (map[int64]string, error) {
	return f.Teams, nil
}

func (f *FakeNames) StudentNames(_ context.Context, _ bun.IDB) (map[int64]string, error) {
	return f.Students, nil
}
