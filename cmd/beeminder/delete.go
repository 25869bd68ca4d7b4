// ABOUTME: CLI command for deleting goals.
// ABOUTME: Deletes by slug; the remote service removes datapoints with it.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <slug>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a goal",
	Long: `Delete a goal by slug.

CAUTION:

  This permanently deletes the goal and every datapoint on it. There is
  no undo and no archive; use the website to archive instead if you want
  the data kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := apiClient.DeleteGoal(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}

		color.Yellow("✗ Deleted %s", goal.Slug)
		fmt.Printf("  %s, %d datapoints gone with it\n", goal.Title, goal.Numpts)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
