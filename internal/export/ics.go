// Package export serializes the schedule collection to iCalendar for
// interchange with external calendar tools.
package export

import (
	"fmt"
	"io"

	ics "github.com/arran4/golang-ical"

	"github.com/sandeepkv93/plannerd/internal/model"
)

const prodID = "-//plannerd//calendar export//EN"

// Calendar builds a VCALENDAR with one VEVENT per schedule. Schedules
// whose start time cannot be parsed are skipped, mirroring how the
// reminder scan treats them.
func Calendar(items []model.Schedule) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	for _, s := range items {
		startAt, err := model.ParseTimestamp(s.StartTime)
		if err != nil {
			continue
		}
		endAt, err := model.ParseTimestamp(s.EndTime)
		if err != nil {
			endAt = startAt
		}

		ev := cal.AddEvent(s.ID + "@plannerd")
		ev.SetSummary(s.Title)
		if s.Description != "" {
			ev.SetDescription(s.Description)
		}
		ev.SetProperty(ics.ComponentPropertyCategories, s.Category)
		if s.AllDay {
			ev.SetAllDayStartAt(startAt)
			ev.SetAllDayEndAt(startAt.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(startAt)
			ev.SetEndAt(endAt)
		}
		if s.Status == model.StatusCancelled {
			ev.SetStatus(ics.ObjectStatusCancelled)
		} else {
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
		if created, err := model.ParseTimestamp(s.CreatedAt); err == nil {
			ev.SetCreatedTime(created)
		}
		if updated, err := model.ParseTimestamp(s.UpdatedAt); err == nil {
			ev.SetModifiedAt(updated)
		}
	}
	return cal
}

// Write serializes the schedules to w.
func Write(w io.Writer, items []model.Schedule) error {
	if err := Calendar(items).SerializeTo(w); err != nil {
		return fmt.Errorf("export: serialize calendar: %w", err)
	}
	return nil
}
