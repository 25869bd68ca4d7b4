// ABOUTME: CLI command for creating goals.
// ABOUTME: Enforces the two-of-three commitment rule before calling the API.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/api"
	"github.com/harperreed/beeminder/internal/models"
	"github.com/harperreed/beeminder/internal/ui"
	"github.com/spf13/cobra"
)

var (
	createTitle      string
	createType       string
	createRate       float64
	createGoalval    float64
	createGoaldate   string
	createInitval    float64
	createGunits     string
	createSecret     bool
	createDatapublic bool
)

var createCmd = &cobra.Command{
	Use:   "create <slug>",
	Short: "Create a goal",
	Long: `Create a new goal.

Exactly two of --goaldate, --goalval, and --rate are required; Beeminder
derives the third.

Examples:
  beeminder create pages --title "Reading" --type hustler --rate 10 --goalval 300
  beeminder create weight --title "Race weight" --type fatloser --rate -0.5 --goaldate 2026-12-31 --initval 85`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]

		if createTitle == "" {
			return fmt.Errorf("--title is required")
		}
		if err := models.ValidateGoalType(createType); err != nil {
			return err
		}
		goalType := models.GoalType(createType)

		var rate, goalval, initval *float64
		var goaldate *int64
		if cmd.Flags().Changed("rate") {
			rate = &createRate
		}
		if cmd.Flags().Changed("goalval") {
			goalval = &createGoalval
		}
		if cmd.Flags().Changed("initval") {
			initval = &createInitval
		}
		if createGoaldate != "" {
			t, err := time.Parse("2006-01-02", createGoaldate)
			if err != nil {
				return fmt.Errorf("invalid goal date %q: want YYYY-MM-DD", createGoaldate)
			}
			ts := t.Unix()
			goaldate = &ts
		}

		if err := models.ValidateCommitment(goaldate, goalval, rate); err != nil {
			return err
		}
		if err := models.ValidateRateDirection(goalType, rate); err != nil {
			return err
		}

		gunits := createGunits
		if gunits == "" {
			if p, ok := models.LookupPolicy(goalType); ok {
				gunits = p.Units
			}
		}

		goal, err := apiClient.CreateGoal(cmd.Context(), api.GoalParams{
			Slug:       slug,
			Title:      createTitle,
			GoalType:   goalType,
			Goaldate:   goaldate,
			Goalval:    goalval,
			Rate:       rate,
			Initval:    initval,
			Gunits:     gunits,
			Secret:     createSecret,
			Datapublic: createDatapublic,
		})
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		color.Green("✓ Created %s goal %s", goal.TypeName(), goal.Slug)
		fmt.Printf("  %s, %s\n", goal.Title, ui.FormatRate(goal))

		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "display title for the goal")
	createCmd.Flags().StringVar(&createType, "type", "", "goal type: hustler, biker, fatloser, gainer, inboxer, drinker")
	createCmd.Flags().Float64Var(&createRate, "rate", 0, "slope of the red line per rate unit")
	createCmd.Flags().Float64Var(&createGoalval, "goalval", 0, "target value the red line will reach")
	createCmd.Flags().StringVar(&createGoaldate, "goaldate", "", "goal date (YYYY-MM-DD)")
	createCmd.Flags().Float64Var(&createInitval, "initval", 0, "initial value of the red line")
	createCmd.Flags().StringVar(&createGunits, "gunits", "", "goal units label, e.g. 'hours' or 'pages'")
	createCmd.Flags().BoolVar(&createSecret, "secret", false, "hide the goal from other users")
	createCmd.Flags().BoolVar(&createDatapublic, "datapublic", false, "make the datapoints publicly visible")
	rootCmd.AddCommand(createCmd)
}
