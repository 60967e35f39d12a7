// Package query is the read side of the planner: pure filters and
// sorts over schedule snapshots. Date comparisons are lexicographic,
// which is correct only because timestamps are zero-padded; the model
// package owns that guarantee.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// Source supplies current snapshots. *repository.Repository implements it.
type Source interface {
	Schedules() []model.Schedule
	Categories() []model.Category
	Plans() []model.Plan
}

type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// All returns the current schedule snapshot, unsorted.
func (e *Engine) All() []model.Schedule {
	return e.src.Schedules()
}

// Categories returns the category list in definition order.
func (e *Engine) Categories() []model.Category {
	return e.src.Categories()
}

// Plans returns the current plan snapshot.
func (e *Engine) Plans() []model.Plan {
	return e.src.Plans()
}

// ByID fetches one schedule.
func (e *Engine) ByID(id string) (model.Schedule, bool) {
	for _, s := range e.src.Schedules() {
		if s.ID == id {
			return s, true
		}
	}
	return model.Schedule{}, false
}

// ByDate returns the schedules starting on the given "2006-01-02" day,
// sorted ascending by start time.
func (e *Engine) ByDate(date string) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if strings.HasPrefix(s.StartTime, date) {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out
}

// ByMonth groups the month's schedules by ISO day key ("2006-01-02").
func (e *Engine) ByMonth(year int, month time.Month) map[string][]model.Schedule {
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))
	out := make(map[string][]model.Schedule)
	for _, s := range e.src.Schedules() {
		if strings.HasPrefix(s.StartTime, prefix) {
			day := s.Date()
			out[day] = append(out[day], s)
		}
	}
	return out
}

// ByCategory returns the schedules in a category, unsorted.
func (e *Engine) ByCategory(name string) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if s.Category == name {
			out = append(out, s)
		}
	}
	return out
}

// ByPlan returns the schedules attached to a plan, unsorted.
func (e *Engine) ByPlan(planID string) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if s.PlanID != nil && *s.PlanID == planID {
			out = append(out, s)
		}
	}
	return out
}

// Search matches keyword case-insensitively against title, description
// or any tag.
func (e *Engine) Search(keyword string) []model.Schedule {
	needle := strings.ToLower(keyword)
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if matches(s, needle) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s model.Schedule, needle string) bool {
	if strings.Contains(strings.ToLower(s.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Description), needle) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Filter is an AND of its non-zero predicates. StartDate compares
// against the full start_time string, EndDate against its date prefix,
// so a bare "2006-01-02" StartDate includes that whole day.
type Filter struct {
	Category  string
	Status    model.Status
	StartDate string
	EndDate   string
}

// Filter applies the composable predicate set, sorted ascending by
// start time.
func (e *Engine) Filter(f Filter) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.StartDate != "" && s.StartTime < f.StartDate {
			continue
		}
		if f.EndDate != "" && s.Date() > f.EndDate {
			continue
		}
		out = append(out, s)
	}
	sortByStart(out)
	return out
}

// PendingReminders returns the schedules due for notification at now:
// not yet reminded, not closed, a positive reminder lead, and now
// inside [start-remind, start). Malformed start times skip the
// schedule for this cycle only.
func (e *Engine) PendingReminders(now time.Time) []model.Schedule {
	out := make([]model.Schedule, 0)
	for _, s := range e.src.Schedules() {
		if s.Reminded || s.Status.Closed() || s.RemindMinutes <= 0 {
			continue
		}
		remindAt, startAt, err := s.ReminderWindow()
		if err != nil {
			continue
		}
		if !now.Before(remindAt) && now.Before(startAt) {
			out = append(out, s)
		}
	}
	return out
}

func sortByStart(items []model.Schedule) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime < items[j].StartTime
	})
}
