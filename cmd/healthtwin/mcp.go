// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthtwin/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with patient data through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "healthtwin": {
        "command": "healthtwin",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_patients        List all patient profiles
  get_patient          Full profile with history and wearable series
  add_patient          Create a patient profile
  record_measurement   Append a clinical measurement snapshot
  assess_risk          Diabetes and heart disease risk scores
  import_sample_data   Generate 7 days of synthetic wearable data

AVAILABLE RESOURCES:

  healthtwin://patients    All patient profiles
  healthtwin://summary     Risk categories for every patient`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, cfg.WearableDir())
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
