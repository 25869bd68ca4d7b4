// ABOUTME: CLI command for listing goals.
// ABOUTME: Shows goals by urgency with colored safety buffers.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/models"
	"github.com/harperreed/beeminder/internal/ui"
	"github.com/spf13/cobra"
)

var listArchived bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List goals",
	Long: `List your goals in order of decreasing urgency.

OUTPUT FORMAT:

  Each line shows: SLUG  TYPE  SAFETY  PLEDGE  RATE

  Safety is colored: red means the goal derails within a day, yellow
  within three days, green beyond that.

EXAMPLES:

  beeminder list              # All active goals
  beeminder list --archived   # Archived goals instead`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var goals []*models.Goal
		var err error
		if listArchived {
			goals, err = apiClient.ListArchivedGoals(cmd.Context())
		} else {
			goals, err = apiClient.ListGoals(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		if len(goals) == 0 {
			fmt.Println("No goals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range goals {
			// Pad before coloring so escape codes don't skew the columns
			safety := ui.SafetyColor(g.Safebuf).Sprint(ui.PadRight(ui.FormatSafeDays(g.Safebuf), 24))
			fmt.Printf("%s %s %s %s %s\n",
				ui.PadRight(g.Slug, 20),
				faint.Sprint(ui.PadRight(string(g.GoalType), 9)),
				safety,
				ui.PadRight(ui.FormatPledge(g.Pledge), 6),
				ui.FormatRate(g))
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "list archived goals instead of active ones")
	rootCmd.AddCommand(listCmd)
}
