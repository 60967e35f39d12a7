package model

import (
	"errors"
	"strings"
)

// Plan is a named goal spanning a date range. Schedules attach to a
// plan by back-reference (Schedule.PlanID); deleting a plan detaches
// its schedules instead of deleting them.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedAt   string `json:"created_at"`
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: plan id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
