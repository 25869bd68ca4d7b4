// ABOUTME: CLI command for showing the authenticated user.
// ABOUTME: Verifies credentials and prints profile basics.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/beeminder/internal/ui"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Long: `Show the Beeminder account the current credentials belong to.

Useful as a quick credential check: an unauthorized error here means
BEEMINDER_USERNAME or BEEMINDER_API_KEY is wrong.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := apiClient.GetUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch user: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(user.Username), faint.Sprintf("(%s)", user.Timezone))
		fmt.Printf("  Goals:   %d", len(user.Goals))
		if len(user.Goals) > 0 {
			fmt.Printf(" (%s)", strings.Join(user.Goals, ", "))
		}
		fmt.Println()
		fmt.Printf("  Updated: %s\n", faint.Sprint(ui.RelativeTime(user.UpdatedAt)))
		if user.UrgencyLoad > 0 {
			fmt.Printf("  Urgency load: %d\n", user.UrgencyLoad)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
