// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/hoops/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "hoops": {
        "command": "hoops",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_session         Log a shooting session with per-type made/missed
  list_sessions       List recent sessions with accuracy
  log_pickup_game     Log a pickup game result and box score
  log_official_game   Add or record an official league game
  list_games          Pickup games plus upcoming and past official games
  get_dashboard       Streak, monthly and overall accuracy, records
  get_progress        Per-session accuracy and weekly shot volume
  get_drills          Drill plan for a weekday

AVAILABLE RESOURCES:

  hoops://dashboard   Dashboard summary
  hoops://today       Today's plan, sessions and reminder
  hoops://progress    Progress series`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
