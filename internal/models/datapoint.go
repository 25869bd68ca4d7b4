// ABOUTME: Datapoint model for Beeminder goal measurements.
// ABOUTME: Handles daystamp parsing and datapoint value validation.
package models

import (
	"fmt"
	"time"
)

// DaystampFormat is Beeminder's day-granularity date format, e.g. "20240101".
const DaystampFormat = "20060102"

// Datapoint is a single timestamped measurement against a goal. Datapoints
// reference their goal by slug and never outlive it.
type Datapoint struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Daystamp  string  `json:"daystamp,omitempty"`
	Value     float64 `json:"value"`
	Comment   string  `json:"comment,omitempty"`
	RequestID string  `json:"requestid,omitempty"`
	Origin    string  `json:"origin,omitempty"`
	Creator   string  `json:"creator,omitempty"`
	IsDummy   bool    `json:"is_dummy,omitempty"`
	IsInitial bool    `json:"is_initial,omitempty"`
	UpdatedAt int64   `json:"updated_at,omitempty"`
}

// Time returns the datapoint's timestamp as a time.Time.
func (d *Datapoint) Time() time.Time {
	return time.Unix(d.Timestamp, 0)
}

// ParseDaystamp parses a daystamp. Only the exact forms YYYYMMDD and
// YYYY-MM-DD are accepted; dashes anywhere else are malformed.
func ParseDaystamp(s string) (time.Time, error) {
	cleaned := s
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		cleaned = s[:4] + s[5:7] + s[8:]
	}
	t, err := time.Parse(DaystampFormat, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized daystamp %q: want YYYYMMDD", s)
	}
	return t, nil
}

// ValidateDaystamp rejects malformed daystamps with a field error.
func ValidateDaystamp(s string) error {
	if s == "" {
		return nil
	}
	if _, err := ParseDaystamp(s); err != nil {
		return &FieldError{Field: "daystamp", Reason: err.Error()}
	}
	return nil
}

// ValidateDatapointValue applies goal-type-specific value checks. Odometer
// goals track a running total, so readings below zero are rejected before
// any remote call. Everything else is left to the remote service.
func ValidateDatapointValue(gt GoalType, value float64) error {
	p, ok := LookupPolicy(gt)
	if !ok {
		return nil
	}
	if p.Monotonic() && value < 0 {
		return &FieldError{
			Field:  "value",
			Reason: fmt.Sprintf("odometer goals take non-negative readings, got %g", value),
		}
	}
	return nil
}
