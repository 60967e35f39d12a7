package model

import "strings"

// FallbackCategory receives the schedules and plans of a deleted
// category, and FallbackColor is the color reported for unknown names.
const (
	FallbackCategory = "Other"
	FallbackColor    = "#B0B0B0"
)

// Category is a named, colored tag applied to schedules and plans.
// Name is the unique key; renames cascade through every referencing
// schedule and plan.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// DefaultCategories seeds a fresh store. The set matches first-run
// behavior; nothing re-creates these once the store exists, and the
// repository does not stop callers from deleting them.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Work", Color: "#4A90D9"},
		{Name: "Life", Color: "#50C878"},
		{Name: "Study", Color: "#FFB347"},
		{Name: FallbackCategory, Color: FallbackColor},
	}
}
