// Package reminder polls the planner on a fixed interval for schedules
// entering their reminder window and emits one notification per
// schedule until the consumer resolves it with Dismiss or Complete.
package reminder

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/query"
)

const (
	DefaultInterval     = 30 * time.Second
	DefaultInitialDelay = time.Second
	DefaultBuffer       = 16
)

// Event carries the full snapshot of a schedule that became due.
type Event struct {
	Schedule model.Schedule
	At       time.Time
}

// Resolver applies reminder resolutions back to the store.
// *repository.Repository implements it.
type Resolver interface {
	UpdateSchedule(id string, patch model.SchedulePatch) error
}

type Option func(*Service)

// WithClock overrides the wall clock used for window checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithInterval overrides the polling interval.
func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithInitialDelay overrides the delay before the first check.
func WithInitialDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.initialDelay = d
		}
	}
}

// WithBuffer overrides the event channel capacity.
func WithBuffer(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.buffer = n
		}
	}
}

type Service struct {
	queries  *query.Engine
	resolver Resolver

	now          func() time.Time
	interval     time.Duration
	initialDelay time.Duration
	buffer       int

	out     chan Event
	dropped uint64

	mu         sync.Mutex
	open       map[string]struct{}
	cron       *cron.Cron
	firstCheck *time.Timer
	started    bool
	stopped    bool
	polls      sync.WaitGroup
}

func New(queries *query.Engine, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		queries:      queries,
		resolver:     resolver,
		now:          time.Now,
		interval:     DefaultInterval,
		initialDelay: DefaultInitialDelay,
		buffer:       DefaultBuffer,
		open:         make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.out = make(chan Event, s.buffer)
	return s
}

// C delivers due-reminder events. It is closed by Stop.
func (s *Service) C() <-chan Event {
	return s.out
}

// Start begins polling: one check after the initial delay, then every
// interval. Starting twice is a no-op.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return nil
	}

	c := cron.New(cron.WithSeconds())
	spec := fmt.Sprintf("@every %ds", int(s.interval.Seconds()))
	if _, err := c.AddFunc(spec, s.runPoll); err != nil {
		return fmt.Errorf("reminder: register poll: %w", err)
	}

	s.cron = c
	s.started = true
	s.firstCheck = time.AfterFunc(s.initialDelay, s.runPoll)
	c.Start()
	return nil
}

// Stop halts polling, waits for any in-flight check and closes the
// event channel. It is idempotent. Dismiss and Complete keep working
// after Stop so no open notification is ever stranded.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.firstCheck != nil {
		s.firstCheck.Stop()
	}
	c := s.cron
	s.mu.Unlock()

	<-c.Stop().Done()
	s.polls.Wait()
	close(s.out)
}

// Check runs a single poll synchronously. The periodic poll goes
// through the same path.
func (s *Service) Check() {
	s.runPoll()
}

// Dismiss resolves a notification without changing schedule status:
// the schedule is marked reminded and the notification slot freed.
// The slot is freed even when the write fails (the schedule may have
// been deleted meanwhile).
func (s *Service) Dismiss(id string) error {
	reminded := true
	err := s.resolver.UpdateSchedule(id, model.SchedulePatch{Reminded: &reminded})
	s.release(id)
	return err
}

// Complete resolves a notification by completing the schedule and
// marking it reminded in one write.
func (s *Service) Complete(id string) error {
	reminded := true
	status := model.StatusCompleted
	err := s.resolver.UpdateSchedule(id, model.SchedulePatch{Status: &status, Reminded: &reminded})
	s.release(id)
	return err
}

// Open returns the ids with a currently-open notification.
func (s *Service) Open() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.open))
	for id := range s.open {
		out = append(out, id)
	}
	return out
}

// Dropped counts events discarded because the consumer fell behind.
// Dropped schedules are retried on the next poll.
func (s *Service) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

func (s *Service) release(id string) {
	s.mu.Lock()
	delete(s.open, id)
	s.mu.Unlock()
}

func (s *Service) runPoll() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.polls.Add(1)
	s.mu.Unlock()
	defer s.polls.Done()

	now := s.now()
	for _, sched := range s.queries.PendingReminders(now) {
		s.mu.Lock()
		_, isOpen := s.open[sched.ID]
		s.mu.Unlock()
		if isOpen {
			continue
		}

		select {
		case s.out <- Event{Schedule: sched, At: now}:
			s.mu.Lock()
			s.open[sched.ID] = struct{}{}
			s.mu.Unlock()
		default:
			// Consumer saturated; the id stays unopened so the
			// next poll retries delivery.
			atomic.AddUint64(&s.dropped, 1)
		}
	}
}
