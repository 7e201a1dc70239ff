package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the walkthrough as tools",
	Long: `Start a Model Context Protocol (MCP) server so agents can run walkthroughs
and inspect scripts without shell overhead. Runs are serialised: one
application is driven at a time.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  storeshots serve
  storeshots serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	path, _ := rootCmd.PersistentFlags().GetString("config")
	base, err := loadBaseConfig(path)
	if err != nil {
		return err
	}

	cfg := MCPConfig{Transport: transport, Port: port}
	srv := newMCPServer(base)
	if err := srv.serve(cfg); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
