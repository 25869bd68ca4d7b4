// ABOUTME: Tests for terminal formatting helpers.
// ABOUTME: Covers safety coloring, pledges, rates, and string helpers.
package ui

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/models"
)

func TestSafetyColor(t *testing.T) {
	tests := []struct {
		safebuf int
		want    color.Attribute
	}{
		{-1, color.FgRed},
		{0, color.FgRed},
		{1, color.FgRed},
		{2, color.FgYellow},
		{3, color.FgYellow},
		{4, color.FgGreen},
		{30, color.FgGreen},
	}

	for _, tt := range tests {
		got := SafetyColor(tt.safebuf)
		want := color.New(tt.want)
		if !got.Equals(want) {
			t.Errorf("SafetyColor(%d) = %v, want %v", tt.safebuf, got, want)
		}
	}
}

func TestFormatSafeDays(t *testing.T) {
	tests := []struct {
		safebuf int
		want    string
	}{
		{0, "derails today"},
		{-2, "derails today"},
		{1, "1 safe day"},
		{7, "7 safe days"},
	}

	for _, tt := range tests {
		if got := FormatSafeDays(tt.safebuf); got != tt.want {
			t.Errorf("FormatSafeDays(%d) = %q, want %q", tt.safebuf, got, tt.want)
		}
	}
}

func TestFormatPledge(t *testing.T) {
	tests := []struct {
		pledge float64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{270, "$270"},
		{7.5, "$7.50"},
	}

	for _, tt := range tests {
		if got := FormatPledge(tt.pledge); got != tt.want {
			t.Errorf("FormatPledge(%g) = %q, want %q", tt.pledge, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	rate := 5.0
	tests := []struct {
		name string
		goal *models.Goal
		want string
	}{
		{
			name: "derived rate",
			goal: &models.Goal{},
			want: "-",
		},
		{
			name: "rate with units",
			goal: &models.Goal{Rate: &rate, Gunits: "pages", Runits: "d"},
			want: "5 pages/d",
		},
		{
			name: "defaults for missing units",
			goal: &models.Goal{Rate: &rate},
			want: "5 units/w",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRate(tt.goal); got != tt.want {
				t.Errorf("FormatRate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		unix int64
		want string
	}{
		{"zero", 0, "never"},
		{"seconds", now.Add(-30 * time.Second).Unix(), "just now"},
		{"minutes", now.Add(-5 * time.Minute).Unix(), "5m ago"},
		{"hours", now.Add(-3 * time.Hour).Unix(), "3h ago"},
		{"days", now.Add(-50 * time.Hour).Unix(), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.unix); got != tt.want {
				t.Errorf("RelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDaystamp(t *testing.T) {
	if got := FormatDaystamp("20240101"); got != "2024-01-01" {
		t.Errorf("FormatDaystamp = %q, want 2024-01-01", got)
	}
	if got := FormatDaystamp("bogus"); got != "bogus" {
		t.Errorf("FormatDaystamp should pass through malformed input, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 30); got != "short" {
		t.Errorf("Truncate = %q, want short", got)
	}
	if got := Truncate("a very long comment about running", 10); got != "a very ..." {
		t.Errorf("Truncate = %q, want %q", got, "a very ...")
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("run", 6); got != "run   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("run-miles", 6); got != "run-miles" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}
