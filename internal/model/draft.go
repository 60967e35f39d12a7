package model

import "strings"

// ScheduleDraft is the caller-supplied shape for creating a schedule.
// The repository fills in the id, audit stamps, initial status and the
// zero-value defaults (category "Other", end time = start time).
type ScheduleDraft struct {
	Title         string
	Description   string
	Category      string
	Tags          []string
	StartTime     string
	EndTime       string
	AllDay        bool
	RemindMinutes int
	PlanID        *string
}

func (d ScheduleDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.StartTime) == "" {
		return &ValidationError{Field: "start_time", Reason: "must not be empty"}
	}
	if d.RemindMinutes < 0 {
		return &ValidationError{Field: "remind_minutes", Reason: "must not be negative"}
	}
	return nil
}

// PlanDraft is the caller-supplied shape for creating a plan.
type PlanDraft struct {
	Name        string
	Description string
	Category    string
	StartDate   string
	EndDate     string
}

func (d PlanDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
