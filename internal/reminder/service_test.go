package reminder

import (
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/query"
	"github.com/sandeepkv93/plannerd/internal/repository"
)

type nopSaver struct{}

func (nopSaver) Save(model.Store) error { return nil }

type fixture struct {
	repo    *repository.Repository
	svc     *Service
	current *time.Time
}

// newFixture wires a real repository and query engine to the service
// with a controllable clock. Polls are driven manually via Check.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	now := time.Date(2026, 2, 3, 8, 50, 0, 0, time.Local)
	f := &fixture{current: &now}

	clock := func() time.Time { return *f.current }
	f.repo = repository.New(model.DefaultStore(), nopSaver{}, repository.WithClock(clock))
	engine := query.NewEngine(f.repo)
	opts = append([]Option{WithClock(clock)}, opts...)
	f.svc = New(engine, f.repo, opts...)
	return f
}

func (f *fixture) addDue(t *testing.T, title string) model.Schedule {
	t.Helper()
	// Starts 09:00 with a 15 minute lead; due at the fixture's 08:50.
	sched, err := f.repo.AddSchedule(model.ScheduleDraft{
		Title:         title,
		StartTime:     "2026-02-03 09:00",
		RemindMinutes: 15,
		Category:      "Work",
	})
	if err != nil {
		t.Fatalf("add schedule: %v", err)
	}
	return sched
}

func (f *fixture) nextEvent(t *testing.T) (Event, bool) {
	t.Helper()
	select {
	case ev := <-f.svc.C():
		return ev, true
	default:
		return Event{}, false
	}
}

func (f *fixture) scheduleByID(t *testing.T, id string) model.Schedule {
	t.Helper()
	for _, s := range f.repo.Schedules() {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("schedule %q not found", id)
	return model.Schedule{}
}

func TestCheckEmitsSnapshotForDueSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.addDue(t, "Standup")

	f.svc.Check()

	ev, ok := f.nextEvent(t)
	if !ok {
		t.Fatalf("expected an event")
	}
	if ev.Schedule.ID != sched.ID || ev.Schedule.Title != "Standup" {
		t.Fatalf("unexpected event payload: %+v", ev.Schedule)
	}
	if open := f.svc.Open(); len(open) != 1 || open[0] != sched.ID {
		t.Fatalf("open set = %v", open)
	}
}

func TestConsecutivePollsEmitAtMostOnce(t *testing.T) {
	f := newFixture(t)
	f.addDue(t, "Standup")

	f.svc.Check()
	f.svc.Check()
	f.svc.Check()

	if _, ok := f.nextEvent(t); !ok {
		t.Fatalf("expected first event")
	}
	if ev, ok := f.nextEvent(t); ok {
		t.Fatalf("duplicate notification emitted: %+v", ev.Schedule)
	}
}

func TestDismissMarksRemindedAndFreesSlot(t *testing.T) {
	f := newFixture(t)
	sched := f.addDue(t, "Standup")
	f.svc.Check()
	f.nextEvent(t)

	if err := f.svc.Dismiss(sched.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	got := f.scheduleByID(t, sched.ID)
	if !got.Reminded {
		t.Fatalf("dismiss must set reminded")
	}
	if got.Status != model.StatusPending {
		t.Fatalf("dismiss must not change status, got %q", got.Status)
	}
	if len(f.svc.Open()) != 0 {
		t.Fatalf("open set not cleared: %v", f.svc.Open())
	}

	// Reminded is one-way: still inside the window, no further events.
	f.svc.Check()
	if ev, ok := f.nextEvent(t); ok {
		t.Fatalf("reminded schedule re-emitted: %+v", ev.Schedule)
	}
}

func TestCompleteMarksCompletedAndReminded(t *testing.T) {
	f := newFixture(t)
	sched := f.addDue(t, "Standup")
	f.svc.Check()
	f.nextEvent(t)

	if err := f.svc.Complete(sched.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got := f.scheduleByID(t, sched.ID)
	if got.Status != model.StatusCompleted || !got.Reminded {
		t.Fatalf("complete must set status and reminded: %+v", got)
	}
	if len(f.svc.Open()) != 0 {
		t.Fatalf("open set not cleared")
	}
}

func TestDismissUnknownIDStillFreesSlot(t *testing.T) {
	f := newFixture(t)
	sched := f.addDue(t, "Standup")
	f.svc.Check()
	f.nextEvent(t)

	// Schedule deleted while its notification was open.
	if err := f.repo.DeleteSchedule(sched.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.Dismiss(sched.ID); err == nil {
		t.Fatalf("expected not-found error")
	}
	if len(f.svc.Open()) != 0 {
		t.Fatalf("open slot leaked for deleted schedule")
	}
}

func TestSaturatedConsumerDropsAndRetries(t *testing.T) {
	f := newFixture(t, WithBuffer(1))
	f.addDue(t, "First")
	f.addDue(t, "Second")

	f.svc.Check()
	if f.svc.Dropped() != 1 {
		t.Fatalf("expected 1 dropped event, got %d", f.svc.Dropped())
	}
	if len(f.svc.Open()) != 1 {
		t.Fatalf("dropped schedule must not be marked open: %v", f.svc.Open())
	}

	// Consumer catches up; the next poll delivers the dropped one.
	if _, ok := f.nextEvent(t); !ok {
		t.Fatalf("expected buffered event")
	}
	f.svc.Check()
	if _, ok := f.nextEvent(t); !ok {
		t.Fatalf("expected retried event")
	}
	if len(f.svc.Open()) != 2 {
		t.Fatalf("both schedules should be open now: %v", f.svc.Open())
	}
}

func TestOutsideWindowEmitsNothing(t *testing.T) {
	f := newFixture(t)
	f.addDue(t, "Standup")

	*f.current = time.Date(2026, 2, 3, 9, 0, 0, 0, time.Local) // start time, exclusive
	f.svc.Check()
	if ev, ok := f.nextEvent(t); ok {
		t.Fatalf("event outside window: %+v", ev.Schedule)
	}
}

func TestStartStopLifecycle(t *testing.T) {
	f := newFixture(t, WithInterval(time.Second), WithInitialDelay(0))
	sched := f.addDue(t, "Standup")

	if err := f.svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.svc.Start(); err != nil {
		t.Fatalf("second start must be a no-op: %v", err)
	}

	// The immediate first check fires within the initial delay.
	select {
	case ev := <-f.svc.C():
		if ev.Schedule.ID != sched.ID {
			t.Fatalf("unexpected event: %+v", ev.Schedule)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for first check")
	}

	f.svc.Stop()
	f.svc.Stop() // idempotent

	// Channel closes after Stop.
	if _, ok := <-f.svc.C(); ok {
		t.Fatalf("expected closed channel after stop")
	}

	// Resolution still works after Stop.
	if err := f.svc.Dismiss(sched.ID); err != nil {
		t.Fatalf("dismiss after stop: %v", err)
	}
	if !f.scheduleByID(t, sched.ID).Reminded {
		t.Fatalf("dismiss after stop did not mark reminded")
	}
}
