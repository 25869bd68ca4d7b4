// ABOUTME: Terminal formatting helpers for goals and datapoints.
// ABOUTME: Colors safety buffers and renders pledges, rates, and ages.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/models"
)

// SafetyColor picks a color for a goal's safety buffer: red for a
// beemergency or one safe day, yellow through three days, green beyond.
func SafetyColor(safebuf int) *color.Color {
	switch {
	case safebuf <= 1:
		return color.New(color.FgRed)
	case safebuf <= 3:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// FormatSafeDays renders a safety buffer as a short phrase.
func FormatSafeDays(safebuf int) string {
	switch {
	case safebuf <= 0:
		return "derails today"
	case safebuf == 1:
		return "1 safe day"
	default:
		return fmt.Sprintf("%d safe days", safebuf)
	}
}

// FormatPledge renders a pledge amount, dropping cents when whole.
func FormatPledge(pledge float64) string {
	if pledge == float64(int64(pledge)) {
		return fmt.Sprintf("$%d", int64(pledge))
	}
	return fmt.Sprintf("$%.2f", pledge)
}

// FormatRate renders a goal's rate with its units, e.g. "5 units/w".
func FormatRate(g *models.Goal) string {
	if g.Rate == nil {
		return "-"
	}
	units := g.Gunits
	if units == "" {
		units = "units"
	}
	runits := g.Runits
	if runits == "" {
		runits = "w"
	}
	return fmt.Sprintf("%g %s/%s", *g.Rate, units, runits)
}

// RelativeTime renders a Unix timestamp as a short age like "3h ago".
func RelativeTime(unix int64) string {
	if unix == 0 {
		return "never"
	}
	d := time.Since(time.Unix(unix, 0))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatDaystamp renders a YYYYMMDD daystamp with dashes for reading.
func FormatDaystamp(daystamp string) string {
	if len(daystamp) != 8 {
		return daystamp
	}
	return daystamp[:4] + "-" + daystamp[4:6] + "-" + daystamp[6:]
}

// Truncate shortens a string to maxLen with an ellipsis.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string with spaces to the given length.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
