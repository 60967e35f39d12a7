package repository

import (
	"testing"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// captureSaver records every save and can be told to fail.
type captureSaver struct {
	saves int
	last  model.Store
	err   error
}

func (c *captureSaver) Save(s model.Store) error {
	c.saves++
	c.last = s
	return c.err
}

func fixedClock() time.Time {
	return time.Date(2026, 2, 3, 8, 0, 0, 0, time.Local)
}

func newTestRepo(t *testing.T) (*Repository, *captureSaver) {
	t.Helper()
	saver := &captureSaver{}
	repo := New(model.DefaultStore(), saver, WithClock(fixedClock))
	return repo, saver
}

func addSchedule(t *testing.T, repo *Repository, draft model.ScheduleDraft) model.Schedule {
	t.Helper()
	sched, err := repo.AddSchedule(draft)
	if err != nil {
		t.Fatalf("add schedule %q: %v", draft.Title, err)
	}
	return sched
}

func addPlan(t *testing.T, repo *Repository, draft model.PlanDraft) model.Plan {
	t.Helper()
	plan, err := repo.AddPlan(draft)
	if err != nil {
		t.Fatalf("add plan %q: %v", draft.Name, err)
	}
	return plan
}

func categoryNames(repo *Repository) []string {
	cats := repo.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}

func drainChanges(repo *Repository) bool {
	select {
	case <-repo.Changes():
		return true
	default:
		return false
	}
}
