// ABOUTME: Root Cobra command for beeminder CLI.
// ABOUTME: Builds the API client from environment credentials in PersistentPreRunE.
package main

import (
	"fmt"

	"github.com/harperreed/beeminder/internal/api"
	"github.com/harperreed/beeminder/internal/config"
	"github.com/spf13/cobra"
)

var (
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "beeminder",
	Short: "Beeminder goals and datapoints from the command line",
	Long: `Beeminder is a CLI for the beeminder.com commitment service.

Every goal tracks a measurable quantity against a Bright Red Line. Enter
data on the wrong side of the line and the goal derails, charging your
pledge.

GOAL TYPES:

  hustler   Do More       study hours, workouts, pages written
  biker     Odometer      cumulative readings like an odometer
  fatloser  Weight Loss   whittle a quantity down
  gainer    Gain Weight   push a quantity up
  inboxer   Inbox Fewer   whittle a count down
  drinker   Do Less       stay under a limit

QUICK START:

  $ beeminder list                              # Goals by urgency
  $ beeminder show run-miles                    # One goal in detail
  $ beeminder datapoint add run-miles 5.2       # Log today's data
  $ beeminder create pages --title "Reading" --type hustler --rate 10 --goalval 300

CREDENTIALS:

  Set BEEMINDER_USERNAME and BEEMINDER_API_KEY in the environment. Your
  API key is at https://www.beeminder.com/api/v1/auth_token.json while
  logged in.

MCP INTEGRATION:

  Run 'beeminder mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants. Add to your
  Claude config:

  {
    "mcpServers": {
      "beeminder": { "command": "beeminder", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip credential loading for commands that never touch the API,
		// and keep an already-injected client (tests set one up front)
		switch cmd.Name() {
		case "version", "help", "install-skill":
			return nil
		}
		if apiClient != nil {
			return nil
		}

		creds, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		var opts []api.Option
		if creds.BaseURL != "" {
			opts = append(opts, api.WithBaseURL(creds.BaseURL))
		}
		apiClient = api.New(creds, opts...)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
