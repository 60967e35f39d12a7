package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// AddSchedule creates a schedule from the draft, filling id, audit
// stamps and defaults (category "Other", end time = start time). The
// created schedule is returned even when the save fails, so the caller
// still knows the id the in-memory store now holds.
func (r *Repository) AddSchedule(draft model.ScheduleDraft) (model.Schedule, error) {
	if err := draft.Validate(); err != nil {
		return model.Schedule{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.stamp()
	sched := model.Schedule{
		ID:            uuid.NewString(),
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		Tags:          draft.Tags,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		AllDay:        draft.AllDay,
		RemindMinutes: draft.RemindMinutes,
		Reminded:      false,
		Status:        model.StatusPending,
		PlanID:        draft.PlanID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sched.Category == "" {
		sched.Category = model.FallbackCategory
	}
	if sched.EndTime == "" {
		sched.EndTime = sched.StartTime
	}
	if sched.Tags == nil {
		sched.Tags = []string{}
	}

	r.store.Schedules = append(r.store.Schedules, sched.Clone())
	return sched, r.persist()
}

// UpdateSchedule applies a partial update and refreshes updated_at.
// The patched schedule must still validate; an invalid patch leaves
// the store untouched.
func (r *Repository) UpdateSchedule(id string, patch model.SchedulePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findSchedule(id)
	if idx < 0 {
		return fmt.Errorf("%w: schedule %q", ErrNotFound, id)
	}

	next := r.store.Schedules[idx].Clone()
	patch.Apply(&next)
	next.UpdatedAt = r.stamp()
	if err := next.Validate(); err != nil {
		return err
	}

	r.store.Schedules[idx] = next
	return r.persist()
}

// DeleteSchedule removes a schedule by id.
func (r *Repository) DeleteSchedule(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findSchedule(id)
	if idx < 0 {
		return fmt.Errorf("%w: schedule %q", ErrNotFound, id)
	}
	r.store.Schedules = append(r.store.Schedules[:idx], r.store.Schedules[idx+1:]...)
	return r.persist()
}

// CompleteSchedule marks a schedule completed.
func (r *Repository) CompleteSchedule(id string) error {
	status := model.StatusCompleted
	return r.UpdateSchedule(id, model.SchedulePatch{Status: &status})
}

// MarkReminded flips the one-way reminded flag. Once set, the schedule
// is permanently ineligible for further reminders.
func (r *Repository) MarkReminded(id string) error {
	reminded := true
	return r.UpdateSchedule(id, model.SchedulePatch{Reminded: &reminded})
}

// findSchedule returns the index of the schedule, -1 if absent.
// Callers hold r.mu.
func (r *Repository) findSchedule(id string) int {
	for i, s := range r.store.Schedules {
		if s.ID == id {
			return i
		}
	}
	return -1
}
