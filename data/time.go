package data

import (
	"encoding/json"
	"fmt"
	"time"
)

// Time is a time.Time that also reads the timestamps older clients send:
// "2024-03-01T12:00:00" with no zone, and plain dates like "1966-09-01".
// Both of those are taken as UTC. It always writes RFC 3339.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("error parsing time %s: %w", data, err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("error parsing time '%s'", s)
}

func wrapTime(t *time.Time) *Time {
	if t == nil {
		return nil
	}
	return &Time{Time: *t}
}

func (t *Time) unwrap() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
