package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidStatus = errors.New("model: invalid schedule status")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Closed reports whether the schedule no longer needs attention
// (completed or cancelled). Closed schedules are never reminded.
func (s Status) Closed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Schedule is a single timed event. Time fields are stored as
// zero-padded strings so that lexicographic comparison matches
// chronological order; see ParseTimestamp for the accepted layouts.
type Schedule struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	AllDay        bool     `json:"all_day"`
	RemindMinutes int      `json:"remind_minutes"`
	Reminded      bool     `json:"reminded"`
	Status        Status   `json:"status"`
	PlanID        *string  `json:"plan_id"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func (s Schedule) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: schedule id is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s.Status)
	}
	if s.RemindMinutes < 0 {
		return &ValidationError{Field: "remind_minutes", Reason: "must not be negative"}
	}
	return nil
}

// Date returns the calendar-day prefix of StartTime ("2006-01-02").
func (s Schedule) Date() string {
	if len(s.StartTime) < len(DateLayout) {
		return s.StartTime
	}
	return s.StartTime[:len(DateLayout)]
}

// ReminderWindow derives the half-open interval [remindAt, startAt)
// during which the schedule is due for notification.
func (s Schedule) ReminderWindow() (remindAt, startAt time.Time, err error) {
	startAt, err = ParseTimestamp(s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	remindAt = startAt.Add(-time.Duration(s.RemindMinutes) * time.Minute)
	return remindAt, startAt, nil
}

// Clone returns a copy that shares no mutable state with the receiver.
func (s Schedule) Clone() Schedule {
	out := s
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	if s.PlanID != nil {
		id := *s.PlanID
		out.PlanID = &id
	}
	return out
}
