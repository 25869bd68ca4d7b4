// ABOUTME: CLI command for updating goal fields.
// ABOUTME: Sends only the flags the user actually set.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/api"
	"github.com/spf13/cobra"
)

var (
	updateTitle     string
	updateRate      float64
	updateGoalval   float64
	updateGoaldate  string
	updateRunits    string
	updateGunits    string
	updateFineprint string
)

var updateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Update a goal",
	Long: `Update fields of an existing goal.

Changes that make a goal easier take effect after the 7-day akrasia
horizon; Beeminder enforces that remotely.

Examples:
  beeminder update run-miles --title "Marathon training"
  beeminder update run-miles --rate 12 --runits w`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.GoalUpdate{
			Title:     updateTitle,
			Runits:    updateRunits,
			Gunits:    updateGunits,
			Fineprint: updateFineprint,
		}
		if cmd.Flags().Changed("rate") {
			update.Rate = &updateRate
		}
		if cmd.Flags().Changed("goalval") {
			update.Goalval = &updateGoalval
		}
		if updateGoaldate != "" {
			t, err := time.Parse("2006-01-02", updateGoaldate)
			if err != nil {
				return fmt.Errorf("invalid goal date %q: want YYYY-MM-DD", updateGoaldate)
			}
			ts := t.Unix()
			update.Goaldate = &ts
		}

		if update.Title == "" && update.Rate == nil && update.Goalval == nil &&
			update.Goaldate == nil && update.Runits == "" && update.Gunits == "" && update.Fineprint == "" {
			return fmt.Errorf("nothing to update: set at least one flag")
		}

		goal, err := apiClient.UpdateGoal(cmd.Context(), args[0], update)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		color.Green("✓ Updated %s", goal.Slug)
		fmt.Printf("  %s\n", goal.Title)

		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title for the goal")
	updateCmd.Flags().Float64Var(&updateRate, "rate", 0, "new rate for the goal")
	updateCmd.Flags().Float64Var(&updateGoalval, "goalval", 0, "new target value")
	updateCmd.Flags().StringVar(&updateGoaldate, "goaldate", "", "new goal date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateRunits, "runits", "", "new rate units: y, m, w, d, or h")
	updateCmd.Flags().StringVar(&updateGunits, "gunits", "", "new goal units label")
	updateCmd.Flags().StringVar(&updateFineprint, "fineprint", "", "new fineprint describing the commitment")
	rootCmd.AddCommand(updateCmd)
}
