package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// AddPlan creates a plan from the draft.
func (r *Repository) AddPlan(draft model.PlanDraft) (model.Plan, error) {
	if err := draft.Validate(); err != nil {
		return model.Plan{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	plan := model.Plan{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		CreatedAt:   r.stamp(),
	}
	if plan.Category == "" {
		plan.Category = model.FallbackCategory
	}

	r.store.Plans = append(r.store.Plans, plan)
	return plan, r.persist()
}

// UpdatePlan applies a partial update. Plans carry no updated_at, so
// only the patched fields change.
func (r *Repository) UpdatePlan(id string, patch model.PlanPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findPlan(id)
	if idx < 0 {
		return fmt.Errorf("%w: plan %q", ErrNotFound, id)
	}

	next := r.store.Plans[idx]
	patch.Apply(&next)
	if err := next.Validate(); err != nil {
		return err
	}

	r.store.Plans[idx] = next
	return r.persist()
}

// DeletePlan removes a plan after detaching every schedule that
// referenced it. The schedules survive with a nil plan_id; plans do
// not own schedule lifetime.
func (r *Repository) DeletePlan(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findPlan(id)
	if idx < 0 {
		return fmt.Errorf("%w: plan %q", ErrNotFound, id)
	}
	for i := range r.store.Schedules {
		s := &r.store.Schedules[i]
		if s.PlanID != nil && *s.PlanID == id {
			s.PlanID = nil
		}
	}
	r.store.Plans = append(r.store.Plans[:idx], r.store.Plans[idx+1:]...)
	return r.persist()
}

// findPlan returns the index of the plan, -1 if absent.
// Callers hold r.mu.
func (r *Repository) findPlan(id string) int {
	for i, p := range r.store.Plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}
