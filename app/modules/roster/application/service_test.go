package rosterservice

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/internal/metrics"
)

func newTestService(repo *FakeRosterRepository, competition, points *FakeCleaner) *Service {
	return NewService(repo, competition, points, slog.New(slog.DiscardHandler), metrics.NewNop(), nil)
}

func TestCreateTeam_NumbersAreSequential(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	red, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)
	blue, err := svc.CreateTeam(ctx, "Blue House", "")
	require.NoError(t, err)
	green, err := svc.CreateTeam(ctx, "Green House", "")
	require.NoError(t, err)

	assert.Equal(t, 1, red.TeamNumber)
	assert.Equal(t, 2, blue.TeamNumber)
	assert.Equal(t, 3, green.TeamNumber)
}

func TestCreateTeam_GeneratesCredentials(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)
	assert.Equal(t, "red_house_team", team.TeamUsername)
	assert.Len(t, team.TeamPassword, 8)
}

func TestCreateTeam_UsernameCollisionGetsSuffix(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	repo.Teams[99] = &rosterdb.Team{ID: 99, Name: "Red", TeamUsername: "red_house_team"}

	team, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)
	assert.Equal(t, "red_house_team_1", team.TeamUsername)
}

func TestCreateTeam_DuplicateName(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	_, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)
	_, err = svc.CreateTeam(ctx, "Red House", "")
	require.ErrorIs(t, err, rosterdb.ErrDuplicateTeamName)
}

func TestDeleteTeam_CascadeOrder(t *testing.T) {
	repo := NewFakeRosterRepository()
	competition := &FakeCleaner{Trace: &repo.Trace, Label: "competition.DeleteForTeam"}
	points := &FakeCleaner{Trace: &repo.Trace, Label: "points.DeleteForTeam"}
	svc := newTestService(repo, competition, points)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)

	student, err := svc.CreateStudent(ctx, CreateStudentInput{
		Name:      "Anju Thomas",
		StudentID: "HS001",
		Category:  sharedtypes.CategoryHS,
		TeamID:    &team.ID,
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStudentChestCode(ctx, nil, student.ID, "101"))

	repo.Trace = nil
	require.NoError(t, svc.DeleteTeam(ctx, team.ID))

	assert.Equal(t, []string{
		"competition.DeleteForTeam",
		"points.DeleteForTeam",
		"DetachStudentsFromTeam",
		"DeleteTeam",
		"ResetTeamNumbering",
	}, repo.Trace)

	// former members survive the delete with no team and no chest code
	kept, err := repo.GetStudent(ctx, nil, student.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.TeamID)
	assert.Empty(t, kept.ChestCode)
}

func TestDeleteTeam_RenumbersRemainingTeams(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	_, err := svc.CreateTeam(ctx, "Red House", "")
	require.NoError(t, err)
	blue, err := svc.CreateTeam(ctx, "Blue House", "")
	require.NoError(t, err)
	_, err = svc.CreateTeam(ctx, "Green House", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTeam(ctx, blue.ID))

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, 1, teams[0].TeamNumber)
	assert.Equal(t, "Red House", teams[0].Name)
	assert.Equal(t, 2, teams[1].TeamNumber)
	assert.Equal(t, "Green House", teams[1].Name)
}

func TestDeleteTeam_NotFound(t *testing.T) {
	repo := NewFakeRosterRepository()
	competition := &FakeCleaner{}
	svc := newTestService(repo, competition, &FakeCleaner{})

	err := svc.DeleteTeam(context.Background(), 42)
	require.ErrorIs(t, err, rosterdb.ErrNotFound)
	assert.Empty(t, competition.Calls)
}

func TestCreateStudent_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateStudentInput
		wantErr string
	}{
		{
			name:    "missing name",
			input:   CreateStudentInput{StudentID: "HS001", Category: sharedtypes.CategoryHS},
			wantErr: "name is required",
		},
		{
			name:    "missing student id",
			input:   CreateStudentInput{Name: "Anju Thomas", Category: sharedtypes.CategoryHS},
			wantErr: "student id is required",
		},
		{
			name:    "general is not a student category",
			input:   CreateStudentInput{Name: "Anju Thomas", StudentID: "HS001", Category: sharedtypes.CategoryGeneral},
			wantErr: "unknown category",
		},
		{
			name:  "valid hss student",
			input: CreateStudentInput{Name: "Binu Raj", StudentID: "HSS014", Category: sharedtypes.CategoryHSS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeRosterRepository()
			svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})

			student, err := svc.CreateStudent(context.Background(), tt.input)
			if tt.wantErr != "" {
				var invalid *InvalidStudentError
				require.ErrorAs(t, err, &invalid)
				assert.Contains(t, invalid.Reason, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, student.ID)
		})
	}
}

func TestCreateStudent_DuplicateIDWithinCategory(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, CreateStudentInput{Name: "Anju Thomas", StudentID: "S001", Category: sharedtypes.CategoryHS})
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, CreateStudentInput{Name: "Someone Else", StudentID: "S001", Category: sharedtypes.CategoryHS})
	require.ErrorIs(t, err, rosterdb.ErrDuplicateStudentID)

	// same id in the other category is fine
	_, err = svc.CreateStudent(ctx, CreateStudentInput{Name: "Binu Raj", StudentID: "S001", Category: sharedtypes.CategoryHSS})
	require.NoError(t, err)
}

func TestCreateStudent_UnknownTeam(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})

	missing := int64(404)
	_, err := svc.CreateStudent(context.Background(), CreateStudentInput{
		Name:      "Anju Thomas",
		StudentID: "HS001",
		Category:  sharedtypes.CategoryHS,
		TeamID:    &missing,
	})
	require.ErrorIs(t, err, rosterdb.ErrNotFound)
}

func TestImportStudents_PartialSuccess(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})

	rows := []CreateStudentInput{
		{Name: "Anju Thomas", StudentID: "HS001", Category: sharedtypes.CategoryHS},
		{Name: "", StudentID: "HS002", Category: sharedtypes.CategoryHS},
		{Name: "Anju Again", StudentID: "HS001", Category: sharedtypes.CategoryHS},
		{Name: "Binu Raj", StudentID: "HSS014", Category: sharedtypes.CategoryHSS},
	}

	result, err := svc.ImportStudents(context.Background(), rows)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
}

func TestImportStudents_GeneratedRosterRoundTrips(t *testing.T) {
	repo := NewFakeRosterRepository()
	svc := newTestService(repo, &FakeCleaner{}, &FakeCleaner{})
	faker := gofakeit.New(7)

	rows := make([]CreateStudentInput, 30)
	want := make([]string, len(rows))
	for i := range rows {
		category := sharedtypes.CategoryHS
		if i%2 == 1 {
			category = sharedtypes.CategoryHSS
		}
		rows[i] = CreateStudentInput{
			Name:      faker.Name(),
			StudentID: fmt.Sprintf("GEN%03d", i),
			Category:  category,
			Grade:     faker.DigitN(2),
		}
		want[i] = rows[i].Name
	}

	result, err := svc.ImportStudents(context.Background(), rows)
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	got := make([]string, len(result.Created))
	for i, student := range result.Created {
		got[i] = student.Name
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported names mismatch (-want +got):\n%s", diff)
	}
}
