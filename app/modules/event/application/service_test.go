package eventservice

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/internal/metrics"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *FakeEventRepository, *FakeCleaner, *FakeCleaner) {
	t.Helper()
	repo := NewFakeEventRepository()
	competition := &FakeCleaner{}
	points := &FakeCleaner{}
	svc := NewService(repo, competition, points, slog.New(slog.DiscardHandler), metrics.NewNop(), nil)
	return svc, repo, competition, points
}

func seedEvent(t *testing.T, repo *FakeEventRepository, status sharedtypes.EventStatus) *eventdb.Event {
	t.Helper()
	event := &eventdb.Event{Title: "Arts Fest", Status: status}
	require.NoError(t, repo.CreateEvent(context.Background(), nil, event))
	return event
}

func TestCreateEvent_DefaultsToDraft(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	event, err := svc.CreateEvent(context.Background(), CreateEventInput{Title: "Arts Fest"})
	require.NoError(t, err)
	assert.Equal(t, sharedtypes.EventStatusDraft, event.Status)
	assert.Equal(t, "other", event.EventType)
	assert.NotZero(t, event.ID)
}

func TestTransitionEventStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    sharedtypes.EventStatus
		to      sharedtypes.EventStatus
		wantErr bool
	}{
		{name: "draft to published", from: sharedtypes.EventStatusDraft, to: sharedtypes.EventStatusPublished},
		{name: "published to ongoing", from: sharedtypes.EventStatusPublished, to: sharedtypes.EventStatusOngoing},
		{name: "ongoing to completed", from: sharedtypes.EventStatusOngoing, to: sharedtypes.EventStatusCompleted},
		{name: "any to cancelled", from: sharedtypes.EventStatusPublished, to: sharedtypes.EventStatusCancelled},
		{name: "draft to ongoing rejected", from: sharedtypes.EventStatusDraft, to: sharedtypes.EventStatusOngoing, wantErr: true},
		{name: "completed is terminal", from: sharedtypes.EventStatusCompleted, to: sharedtypes.EventStatusOngoing, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService(t)
			event := seedEvent(t, repo, tt.from)

			err := svc.TransitionEventStatus(context.Background(), event.ID, tt.to)
			if tt.wantErr {
				var invalid *InvalidTransitionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.from, invalid.From)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, repo.Events[event.ID].Status)
		})
	}
}

func TestDeleteEvent_CascadesButSparesTeams(t *testing.T) {
	svc, repo, competition, points := newTestService(t)
	event := seedEvent(t, repo, sharedtypes.EventStatusCompleted)
	_, err := svc.CreateProgram(context.Background(), CreateProgramInput{
		EventID:  event.ID,
		Name:     "Solo Song",
		Category: sharedtypes.CategoryHS,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(context.Background(), event.ID))

	assert.Equal(t, []int64{event.ID}, competition.Calls)
	assert.Equal(t, []int64{event.ID}, points.Calls)
	assert.Empty(t, repo.Events)
	assert.Empty(t, repo.Programs)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc, _, competition, _ := newTestService(t)

	err := svc.DeleteEvent(context.Background(), 99)
	require.ErrorIs(t, err, eventdb.ErrNotFound)
	assert.Empty(t, competition.Calls)
}

func TestCreateProgram_Rules(t *testing.T) {
	three := 3

	tests := []struct {
		name       string
		input      CreateProgramInput
		wantErr    string
		check      func(t *testing.T, p *eventdb.Program)
	}{
		{
			name:  "hs program forced individual",
			input: CreateProgramInput{Name: "Essay", Category: sharedtypes.CategoryHS, IsTeamBased: true, TeamSize: &three},
			check: func(t *testing.T, p *eventdb.Program) {
				assert.False(t, p.IsTeamBased)
				assert.Nil(t, p.TeamSize)
			},
		},
		{
			name:  "hss program forced individual",
			input: CreateProgramInput{Name: "Debate", Category: sharedtypes.CategoryHSS, IsTeamBased: true},
			check: func(t *testing.T, p *eventdb.Program) {
				assert.False(t, p.IsTeamBased)
			},
		},
		{
			name:    "team based without team size rejected",
			input:   CreateProgramInput{Name: "Group Dance", Category: sharedtypes.CategoryGeneral, IsTeamBased: true},
			wantErr: "team size",
		},
		{
			name:  "general team based with team size accepted",
			input: CreateProgramInput{Name: "Group Song", Category: sharedtypes.CategoryGeneral, IsTeamBased: true, TeamSize: &three},
			check: func(t *testing.T, p *eventdb.Program) {
				assert.True(t, p.IsTeamBased)
				assert.Equal(t, 3, *p.TeamSize)
			},
		},
		{
			name:    "unknown category rejected",
			input:   CreateProgramInput{Name: "Mystery", Category: "college"},
			wantErr: "unknown category",
		},
		{
			name:  "empty category defaults to general",
			input: CreateProgramInput{Name: "Quiz"},
			check: func(t *testing.T, p *eventdb.Program) {
				assert.Equal(t, sharedtypes.CategoryGeneral, p.Category)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService(t)
			event := seedEvent(t, repo, sharedtypes.EventStatusDraft)
			tt.input.EventID = event.ID

			program, err := svc.CreateProgram(context.Background(), tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, program)
		})
	}
}

func TestCreateProgram_DuplicateName(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	event := seedEvent(t, repo, sharedtypes.EventStatusDraft)

	_, err := svc.CreateProgram(context.Background(), CreateProgramInput{EventID: event.ID, Name: "Solo Song"})
	require.NoError(t, err)
	_, err = svc.CreateProgram(context.Background(), CreateProgramInput{EventID: event.ID, Name: "Solo Song"})
	require.ErrorIs(t, err, eventdb.ErrDuplicateProgramName)
}

func TestCreateProgram_ScheduleText(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	svc.WithClock(fixedClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)})
	event := seedEvent(t, repo, sharedtypes.EventStatusDraft)

	program, err := svc.CreateProgram(context.Background(), CreateProgramInput{
		EventID:      event.ID,
		Name:         "Solo Song",
		ScheduleText: "tomorrow at 3pm",
	})
	require.NoError(t, err)
	require.NotNil(t, program.StartTime)
	assert.Equal(t, time.Date(2026, time.March, 3, 15, 0, 0, 0, time.UTC), *program.StartTime)
}

func TestCreateProgram_BadScheduleText(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	event := seedEvent(t, repo, sharedtypes.EventStatusDraft)

	_, err := svc.CreateProgram(context.Background(), CreateProgramInput{
		EventID:      event.ID,
		Name:         "Solo Song",
		ScheduleText: "xyzzy",
	})
	var invalid *InvalidProgramError
	require.ErrorAs(t, err, &invalid)
}
