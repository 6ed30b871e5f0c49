// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/agewell/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "agewell": {
        "command": "agewell",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  calculate_bmi               BMI with an age-appropriate category
  estimate_insurance_savings  Premium and healthcare savings (INR)
  list_habits                 Tracked habits
  add_habit / delete_habit    Manage habits
  increment_habit             Record one completion
  decrement_habit             Undo the latest completion
  habit_progress              Progress for a day
  log_cycle / delete_cycle    Manage cycles
  list_cycles                 Logged cycles
  predict_cycle               Next expected period
  meal_plan                   Meal suggestions and shopping list
  ask_assistant               Nutrition questions

AVAILABLE RESOURCES:

  agewell://today     Today's habit progress
  agewell://cycles    Recent cycles and prediction
  agewell://summary   Profile, progress, and prediction`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
