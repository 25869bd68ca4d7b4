// ABOUTME: Tests for Datapoint model and daystamp handling.
// ABOUTME: Covers parsing, validation, and goal-type value checks.
package models

import (
	"testing"
	"time"
)

func TestParseDaystamp(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"20240101", "2024-01-01", false},
		{"2024-01-01", "2024-01-01", false},
		{"20241231", "2024-12-31", false},
		{"2024-13-01", "", true},
		{"2-0240101", "", true},
		{"20-240101", "", true},
		{"2024-1-01", "", true},
		{"2024010-1", "", true},
		{"jan 1", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDaystamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDaystamp(%s) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestValidateDaystamp(t *testing.T) {
	if err := ValidateDaystamp(""); err != nil {
		t.Errorf("empty daystamp should be allowed: %v", err)
	}
	if err := ValidateDaystamp("20240101"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDaystamp("not-a-date"); err == nil {
		t.Error("expected error for malformed daystamp")
	}
}

func TestValidateDatapointValue(t *testing.T) {
	tests := []struct {
		name     string
		goalType GoalType
		value    float64
		wantErr  bool
	}{
		{"biker positive", GoalBiker, 1500, false},
		{"biker zero", GoalBiker, 0, false},
		{"biker negative", GoalBiker, -5, true},
		{"hustler negative", GoalHustler, -5, false},
		{"fatloser any", GoalFatloser, 82.5, false},
		{"unknown type skipped", GoalType("custom"), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatapointValue(tt.goalType, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatapointValue() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatapointTime(t *testing.T) {
	d := Datapoint{Timestamp: 1704067200}
	want := time.Unix(1704067200, 0)
	if !d.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", d.Time(), want)
	}
}
