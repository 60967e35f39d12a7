package model

// SchedulePatch is a partial update: nil fields are left untouched.
// ClearPlanID detaches the schedule from its plan; it wins over PlanID
// when both are set.
type SchedulePatch struct {
	Title         *string
	Description   *string
	Category      *string
	Tags          *[]string
	StartTime     *string
	EndTime       *string
	AllDay        *bool
	RemindMinutes *int
	Reminded      *bool
	Status        *Status
	PlanID        *string
	ClearPlanID   bool
}

// Apply copies the set fields onto the schedule. Callers validate the
// result afterwards; Apply itself never fails.
func (p SchedulePatch) Apply(s *Schedule) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Tags != nil {
		s.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.AllDay != nil {
		s.AllDay = *p.AllDay
	}
	if p.RemindMinutes != nil {
		s.RemindMinutes = *p.RemindMinutes
	}
	if p.Reminded != nil {
		s.Reminded = *p.Reminded
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	switch {
	case p.ClearPlanID:
		s.PlanID = nil
	case p.PlanID != nil:
		id := *p.PlanID
		s.PlanID = &id
	}
}

// PlanPatch is the partial-update shape for plans.
type PlanPatch struct {
	Name        *string
	Description *string
	Category    *string
	StartDate   *string
	EndDate     *string
}

func (p PlanPatch) Apply(pl *Plan) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Category != nil {
		pl.Category = *p.Category
	}
	if p.StartDate != nil {
		pl.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		pl.EndDate = *p.EndDate
	}
}
