// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/beeminder/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to manage your Beeminder goals through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "beeminder": {
        "command": "beeminder",
        "args": ["mcp"],
        "env": {
          "BEEMINDER_USERNAME": "your-username",
          "BEEMINDER_API_KEY": "your-key"
        }
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  list_goals           List all active goals
  get_archived_goals   List archived goals
  get_goal             Get one goal, optionally with datapoints
  create_goal          Create a goal (two of goaldate/goalval/rate)
  update_goal          Update goal fields
  delete_goal          Delete a goal and its datapoints
  list_datapoints      List datapoints for a goal
  create_datapoint     Record a datapoint
  create_datapoints    Record a batch of datapoints
  delete_datapoint     Delete a datapoint by ID
  get_user             Get the current user's profile

AVAILABLE RESOURCES:

  beeminder://goals          All active goals
  beeminder://frontburner    Goals with two or fewer safe days
  beeminder://user           The authenticated user`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(apiClient)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
