package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "bugdesk/internal/mcp"
	"bugdesk/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: "Starts an MCP server over stdin/stdout exposing the pipeline, the\n" +
		"classifier and the digest as tools for agent integrations.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg.Workbook == "" {
		return fmt.Errorf("no workbook configured; set workbook: in the config file or pass --workbook")
	}

	srv := mcpserver.NewServer(cfg.Workbook)
	logging.New("mcp").Info("starting bugdesk MCP server over stdio")
	return srv.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
