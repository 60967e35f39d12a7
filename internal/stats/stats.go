// Package stats computes read-only aggregates over the planner's
// current schedule collection.
package stats

import (
	"math"
	"time"

	"github.com/sandeepkv93/plannerd/internal/model"
	"github.com/sandeepkv93/plannerd/internal/query"
)

type Option func(*Aggregator)

// WithClock overrides the wall clock used by Daily.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

type Aggregator struct {
	engine *query.Engine
	now    func() time.Time
}

func New(engine *query.Engine, opts ...Option) *Aggregator {
	a := &Aggregator{engine: engine, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Completion counts schedules by status across the whole store.
type Completion struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"in_progress"`
	Cancelled      int     `json:"cancelled"`
	CompletionRate float64 `json:"completion_rate"`
}

func (a *Aggregator) Completion() Completion {
	var out Completion
	for _, s := range a.engine.All() {
		out.Total++
		switch s.Status {
		case model.StatusCompleted:
			out.Completed++
		case model.StatusPending:
			out.Pending++
		case model.StatusInProgress:
			out.InProgress++
		case model.StatusCancelled:
			out.Cancelled++
		}
	}
	if out.Total > 0 {
		out.CompletionRate = rate(out.Completed, out.Total)
	}
	return out
}

// CategoryCount is one slice of the per-category distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// ByCategory counts schedules per defined category, in category
// definition order, including categories with zero schedules.
func (a *Aggregator) ByCategory() []CategoryCount {
	counts := make(map[string]int)
	for _, s := range a.engine.All() {
		counts[s.Category]++
	}

	cats := a.engine.Categories()
	out := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryCount{Name: c.Name, Color: c.Color, Count: counts[c.Name]})
	}
	return out
}

// DailyCount is one day of the rolling trend.
type DailyCount struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Daily returns per-day totals for the last days calendar days, oldest
// first and today last.
func (a *Aggregator) Daily(days int) []DailyCount {
	out := make([]DailyCount, 0, days)
	today := a.now()
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		entry := DailyCount{
			Date: day.Format(model.DateLayout),
			Day:  day.Format("01-02"),
		}
		for _, s := range a.engine.ByDate(entry.Date) {
			entry.Total++
			if s.Status == model.StatusCompleted {
				entry.Completed++
			}
		}
		out = append(out, entry)
	}
	return out
}

// PlanProgress is the completion ratio of one plan's schedules.
type PlanProgress struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Progress  float64 `json:"progress"`
}

func (a *Aggregator) PlanProgress(planID string) PlanProgress {
	var out PlanProgress
	for _, s := range a.engine.ByPlan(planID) {
		out.Total++
		if s.Status == model.StatusCompleted {
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.Progress = rate(out.Completed, out.Total)
	}
	return out
}

// rate is a percentage rounded to one decimal place.
func rate(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*1000) / 10
}
