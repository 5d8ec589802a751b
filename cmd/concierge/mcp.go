package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/berryair/concierge"
	"github.com/berryair/concierge/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the assistant as an MCP Server over stdio.
This allows AI agents to drive booking conversations as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		bot, err := newBot(cmd)
		if err != nil {
			log.Fatalf("Error initializing concierge: %v", err)
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout.
		log.SetOutput(os.Stderr)

		srv := mcp.NewServer(bot.Manager(), concierge.Version)

		slog.Info("Starting Concierge MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
