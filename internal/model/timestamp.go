package model

import (
	"errors"
	"fmt"
	"time"
)

// Timestamp layouts. Schedules are written with minute precision;
// parsing also accepts seconds. Audit stamps (created_at/updated_at)
// carry seconds. Zero padding is load-bearing: queries compare these
// strings lexicographically.
const (
	TimestampLayout        = "2006-01-02 15:04"
	TimestampSecondsLayout = "2006-01-02 15:04:05"
	DateLayout             = "2006-01-02"
)

var ErrMalformedTimestamp = errors.New("model: malformed timestamp")

// ParseTimestamp parses "2006-01-02 15:04" with optional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimestampLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(TimestampSecondsLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
}

// Stamp formats an audit timestamp with second precision.
func Stamp(t time.Time) string {
	return t.Format(TimestampSecondsLayout)
}
