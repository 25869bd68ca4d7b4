// ABOUTME: CLI command for showing one goal in detail.
// ABOUTME: Optionally includes the goal's recent datapoints.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/ui"
	"github.com/spf13/cobra"
)

var showDatapoints bool

var showCmd = &cobra.Command{
	Use:     "show <slug>",
	Aliases: []string{"s"},
	Short:   "Show a goal",
	Long: `Show one goal in detail.

Examples:
  beeminder show run-miles
  beeminder show run-miles --datapoints`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := apiClient.GetGoal(cmd.Context(), args[0], showDatapoints)
		if err != nil {
			return fmt.Errorf("failed to fetch goal: %w", err)
		}

		faint := color.New(color.Faint)
		safety := ui.SafetyColor(goal.Safebuf)

		fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(goal.Slug), faint.Sprintf("(%s)", goal.TypeName()))
		fmt.Printf("  %s\n", goal.Title)
		fmt.Printf("  Safety:  %s\n", safety.Sprint(ui.FormatSafeDays(goal.Safebuf)))
		fmt.Printf("  Pledge:  %s\n", ui.FormatPledge(goal.Pledge))
		fmt.Printf("  Rate:    %s\n", ui.FormatRate(goal))
		fmt.Printf("  Current: %g %s over %d datapoints\n", goal.Curval, goal.Gunits, goal.Numpts)
		if goal.Limsum != "" {
			fmt.Printf("  Bare minimum: %s\n", goal.Limsum)
		}
		if goal.Fineprint != "" {
			fmt.Printf("  Fineprint: %s\n", goal.Fineprint)
		}
		fmt.Printf("  Updated: %s\n", faint.Sprint(ui.RelativeTime(goal.UpdatedAt)))

		if showDatapoints && len(goal.Datapoints) > 0 {
			fmt.Println()
			for _, dp := range goal.Datapoints {
				comment := ""
				if dp.Comment != "" {
					comment = faint.Sprintf(" (%s)", ui.Truncate(dp.Comment, 30))
				}
				fmt.Printf("  %s %s %.2f%s\n",
					faint.Sprint(dp.ID),
					ui.FormatDaystamp(dp.Daystamp),
					dp.Value,
					comment)
			}
		}

		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showDatapoints, "datapoints", "d", false, "include the goal's datapoints")
	rootCmd.AddCommand(showCmd)
}
