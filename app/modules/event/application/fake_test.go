package eventservice

import (
	"context"

	"github.com/uptrace/bun"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// FakeEventRepository provides an in-memory programmable stub for
// eventdb.Repository.
type FakeEventRepository struct {
	trace []string

	nextID        int64
	Events        map[int64]*eventdb.Event
	Programs      map[int64]*eventdb.Program
	Announcements []*eventdb.Announcement

	CreateEventFunc   func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
	CreateProgramFunc func(ctx context.Context, db bun.IDB, program *eventdb.Program) error
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{
		Events:   map[int64]*eventdb.Event{},
		Programs: map[int64]*eventdb.Program{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeEventRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEventRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepository) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *FakeEventRepository) CreateEvent(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.record("CreateEvent")
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, db, event)
	}
	event.ID = f.id()
	f.Events[event.ID] = event
	return nil
}

func (f *FakeEventRepository) GetEvent(ctx context.Context, db bun.IDB, id int64) (*eventdb.Event, error) {
	f.record("GetEvent")
	event, ok := f.Events[id]
	if !ok {
		return nil, eventdb.ErrNotFound
	}
	return event, nil
}

func (f *FakeEventRepository) ListEvents(ctx context.Context, db bun.IDB) ([]eventdb.Event, error) {
	f.record("ListEvents")
	var out []eventdb.Event
	for _, e := range f.Events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *FakeEventRepository) UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, status sharedtypes.EventStatus) error {
	f.record("UpdateEventStatus")
	event, ok := f.Events[id]
	if !ok {
		return eventdb.ErrNoRowsAffected
	}
	event.Status = status
	return nil
}

func (f *FakeEventRepository) DeleteEvent(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteEvent")
	if _, ok := f.Events[id]; !ok {
		return eventdb.ErrNoRowsAffected
	}
	delete(f.Events, id)
	return nil
}

func (f *FakeEventRepository) CreateProgram(ctx context.Context, db bun.IDB, program *eventdb.Program) error {
	f.record("CreateProgram")
	if f.CreateProgramFunc != nil {
		return f.CreateProgramFunc(ctx, db, program)
	}
	for _, p := range f.Programs {
		if p.EventID == program.EventID && p.Name == program.Name {
			return eventdb.ErrDuplicateProgramName
		}
	}
	program.ID = f.id()
	f.Programs[program.ID] = program
	return nil
}

func (f *FakeEventRepository) GetProgram(ctx context.Context, db bun.IDB, id int64) (*eventdb.Program, error) {
	f.record("GetProgram")
	program, ok := f.Programs[id]
	if !ok {
		return nil, eventdb.ErrNotFound
	}
	return program, nil
}

func (f *FakeEventRepository) ListProgramsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]eventdb.Program, error) {
	f.record("ListProgramsForEvent")
	var out []eventdb.Program
	for _, p := range f.Programs {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *FakeEventRepository) UpdateProgram(ctx context.Context, db bun.IDB, program *eventdb.Program) error {
	f.record("UpdateProgram")
	if _, ok := f.Programs[program.ID]; !ok {
		return eventdb.ErrNoRowsAffected
	}
	f.Programs[program.ID] = program
	return nil
}

func (f *FakeEventRepository) DeleteProgram(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteProgram")
	if _, ok := f.Programs[id]; !ok {
		return eventdb.ErrNoRowsAffected
	}
	delete(f.Programs, id)
	return nil
}

func (f *FakeEventRepository) ListProgramIDsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]int64, error) {
	f.record("ListProgramIDsForEvent")
	var ids []int64
	for id, p := range f.Programs {
		if p.EventID == eventID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *FakeEventRepository) CreateAnnouncement(ctx context.Context, db bun.IDB, a *eventdb.Announcement) error {
	f.record("CreateAnnouncement")
	a.ID = f.id()
	f.Announcements = append(f.Announcements, a)
	return nil
}

func (f *FakeEventRepository) ListAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) ([]eventdb.Announcement, error) {
	f.record("ListAnnouncementsForEvent")
	var out []eventdb.Announcement
	for _, a := range f.Announcements {
		if a.EventID == eventID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *FakeEventRepository) DeleteAnnouncementsForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	f.record("DeleteAnnouncementsForEvent")
	kept := f.Announcements[:0]
	for _, a := range f.Announcements {
		if a.EventID != eventID {
			kept = append(kept, a)
		}
	}
	f.Announcements = kept
	return nil
}

var _ eventdb.Repository = (*FakeEventRepository)(nil)

// FakeCleaner records cascade calls from DeleteEvent and DeleteProgram.
type FakeCleaner struct {
	Calls        []int64
	ProgramCalls []int64
	Err          error
}

func (f *FakeCleaner) DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error {
	f.Calls = append(f.Calls, eventID)
	return f.Err
}

func (f *FakeCleaner) DeleteForProgram(ctx context.Context, db bun.IDB, programID int64) error {
	f.ProgramCalls = append(f.ProgramCalls, programID)
	return f.Err
}
