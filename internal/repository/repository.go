// Package repository owns the in-memory planner store. All mutations
// funnel through one Repository: each one validates, applies, then
// writes the whole store back through the Saver. On save failure the
// in-memory state is deliberately left ahead of disk and the error is
// returned for the caller to act on.
package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate category name")
)

// Saver persists a full store snapshot. *storage.FileStore implements it.
type Saver interface {
	Save(model.Store) error
}

type Option func(*Repository)

// WithClock overrides the wall clock used for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

type Repository struct {
	mu      sync.Mutex
	store   model.Store
	saver   Saver
	now     func() time.Time
	changed chan struct{}
}

func New(store model.Store, saver Saver, opts ...Option) *Repository {
	r := &Repository{
		store:   store.Clone(),
		saver:   saver,
		now:     time.Now,
		changed: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Changes delivers a coalesced signal after every mutation. There is
// no payload; consumers re-pull whatever queries they care about.
func (r *Repository) Changes() <-chan struct{} {
	return r.changed
}

// Categories returns a copy of the category list in definition order.
func (r *Repository) Categories() []model.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Category(nil), r.store.Categories...)
}

// CategoryColor resolves a category name to its color, falling back to
// the neutral gray for unknown names.
func (r *Repository) CategoryColor(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.store.Categories {
		if c.Name == name {
			return c.Color
		}
	}
	return model.FallbackColor
}

// Schedules returns deep copies of every schedule.
func (r *Repository) Schedules() []model.Schedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Schedule, 0, len(r.store.Schedules))
	for _, s := range r.store.Schedules {
		out = append(out, s.Clone())
	}
	return out
}

// Plans returns a copy of every plan.
func (r *Repository) Plans() []model.Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Plan(nil), r.store.Plans...)
}

// Plan fetches a plan by id.
func (r *Repository) Plan(id string) (model.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.store.Plans {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Plan{}, fmt.Errorf("%w: plan %q", ErrNotFound, id)
}

// persist writes the current store through the saver and fires the
// change signal. The signal fires even when the save fails: the
// in-memory state did change and consumers must re-read it.
// Callers hold r.mu.
func (r *Repository) persist() error {
	err := r.saver.Save(r.store.Clone())
	r.notify()
	if err != nil {
		return fmt.Errorf("repository: persist: %w", err)
	}
	return nil
}

func (r *Repository) notify() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}

func (r *Repository) stamp() string {
	return model.Stamp(r.now())
}
