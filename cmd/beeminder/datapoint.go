// ABOUTME: CLI commands for managing datapoints.
// ABOUTME: Supports add, list, and delete subcommands per goal.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/beeminder/internal/api"
	"github.com/harperreed/beeminder/internal/models"
	"github.com/harperreed/beeminder/internal/ui"
	"github.com/spf13/cobra"
)

var (
	datapointDate      string
	datapointComment   string
	datapointRequestID string
	datapointSort      string
	datapointLimit     int
)

var datapointCmd = &cobra.Command{
	Use:     "datapoint",
	Aliases: []string{"dp", "d"},
	Short:   "Manage datapoints",
	Long: `Record and manage datapoints against a goal.

Datapoints are day-granularity: the daystamp (YYYYMMDD in your Beeminder
timezone) decides which day the value counts toward, not the clock time.

WORKFLOW:

  1. Log data:       beeminder datapoint add run-miles 5.2
  2. Review it:      beeminder datapoint list run-miles
  3. Fix mistakes:   beeminder datapoint delete run-miles <id>

COMMANDS:

  add      Record a datapoint
  list     List a goal's datapoints
  delete   Delete a datapoint by ID`,
}

var datapointAddCmd = &cobra.Command{
	Use:   "add <slug> <value>",
	Short: "Record a datapoint",
	Long: `Record a datapoint against a goal. Defaults to today.

Examples:
  beeminder datapoint add run-miles 5.2
  beeminder datapoint add run-miles 3.1 --date 2026-08-20 --comment "recovery run"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}
		if err := models.ValidateDaystamp(datapointDate); err != nil {
			return err
		}

		// Fetch the goal first so a typo'd slug fails cleanly and the goal
		// type can gate the value.
		goal, err := apiClient.GetGoal(cmd.Context(), slug, false)
		if err != nil {
			return fmt.Errorf("failed to fetch goal: %w", err)
		}
		if err := models.ValidateDatapointValue(goal.GoalType, value); err != nil {
			return err
		}

		requestID := datapointRequestID
		if requestID == "" {
			requestID = uuid.New().String()
		}

		dp, err := apiClient.CreateDatapoint(cmd.Context(), slug, api.DatapointParams{
			Value:     value,
			Daystamp:  datapointDate,
			Comment:   datapointComment,
			RequestID: requestID,
		})
		if err != nil {
			return fmt.Errorf("failed to create datapoint: %w", err)
		}

		color.Green("✓ Added %g to %s", dp.Value, slug)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(dp.ID),
			ui.FormatDaystamp(dp.Daystamp))

		return nil
	},
}

var datapointListCmd = &cobra.Command{
	Use:     "list <slug>",
	Aliases: []string{"ls"},
	Short:   "List datapoints",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		datapoints, err := apiClient.ListDatapoints(cmd.Context(), args[0], api.DatapointQuery{
			Sort:  datapointSort,
			Count: datapointLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list datapoints: %w", err)
		}

		if len(datapoints) == 0 {
			fmt.Println("No datapoints found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, dp := range datapoints {
			comment := ""
			if dp.Comment != "" {
				comment = faint.Sprintf(" (%s)", ui.Truncate(dp.Comment, 30))
			}
			fmt.Printf("%s %s %.2f%s\n",
				faint.Sprint(dp.ID),
				ui.FormatDaystamp(dp.Daystamp),
				dp.Value,
				comment)
		}

		return nil
	},
}

var datapointDeleteCmd = &cobra.Command{
	Use:     "delete <slug> <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a datapoint",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dp, err := apiClient.DeleteDatapoint(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to delete datapoint: %w", err)
		}

		color.Yellow("✗ Deleted datapoint %s", dp.ID)
		fmt.Printf("  %s %.2f\n", ui.FormatDaystamp(dp.Daystamp), dp.Value)

		return nil
	},
}

func init() {
	datapointAddCmd.Flags().StringVar(&datapointDate, "date", "", "daystamp for the datapoint (YYYYMMDD or YYYY-MM-DD)")
	datapointAddCmd.Flags().StringVar(&datapointComment, "comment", "", "comment for the datapoint")
	datapointAddCmd.Flags().StringVar(&datapointRequestID, "requestid", "", "idempotency key; generated when omitted")
	datapointListCmd.Flags().StringVar(&datapointSort, "sort", "", "attribute to sort on, descending")
	datapointListCmd.Flags().IntVarP(&datapointLimit, "limit", "n", 20, "max number of results")
	datapointCmd.AddCommand(datapointAddCmd)
	datapointCmd.AddCommand(datapointListCmd)
	datapointCmd.AddCommand(datapointDeleteCmd)
	rootCmd.AddCommand(datapointCmd)
}
