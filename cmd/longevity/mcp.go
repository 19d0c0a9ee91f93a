// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/longevity/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants interact with your metrics through a standardized
protocol. The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "longevity": {
        "command": "longevity",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_entry         Record metric values as a new entry
  amend_entry       Replace an entry wholesale
  list_entries      List entries with derived values computed
  delete_entry      Delete an entry by ID
  get_dashboard     Status, streaks, and weekly progress
  get_feedback      Ranked feedback messages
  get_coaching      Missing daily metrics and at-risk weekly targets
  list_metrics      Metric definitions in registry order
  upsert_metric     Create or update a metric definition
  dismiss_feedback  Hide feedback for a metric

AVAILABLE RESOURCES:

  longevity://dashboard   Full status snapshot
  longevity://today       Today's log and what's still missing
  longevity://coaching    Feedback plus coaching summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

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
