package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sift/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve Sift search to MCP clients",
	Long: `Expose file search, previews, summaries and query history as Model
Context Protocol tools and resources.

The server speaks JSON-RPC on stdin and stdout unless --http is given, in
which case it serves the streamable HTTP transport at that address.

  sift mcp
  sift mcp --http 127.0.0.1:7331

An MCP client launches it as a subprocess:

  {"mcpServers": {"sift": {"command": "sift", "args": ["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve streamable HTTP on `addr` instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Search:       searchService,
		Preview:      previewService,
		Assist:       assistService,
		History:      historyService,
		Integrations: integrationService,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if mcpHTTPAddr == "" {
		return server.Run(cmd.Context())
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "sift mcp: serving http://%s\n", mcpHTTPAddr)
	return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
}
