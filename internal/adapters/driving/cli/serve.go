package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/mcp"
	"github.com/custodia-labs/foodshare/internal/core/domain"
)

var (
	serveAddr string
	serveMCP  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a JSON API",
	Long: `Serve the dashboard over HTTP.

Endpoints:
  GET  /api/v1/options
  GET  /api/v1/dashboard?city=&provider=&food_type=
  GET  /api/v1/views/{view}?city=&provider=&food_type=
  GET  /api/v1/providers/ids
  POST /api/v1/listings
  GET  /healthz

The listen address and CORS origins default to the server.addr and
server.allowed_origins settings. Use --mcp to also serve the MCP
endpoint at /mcp.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP over streamable HTTP at /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, addr, err := newHTTPServer()
	if err != nil {
		return err
	}

	cmd.Printf("Serving foodshare on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}

// newHTTPServer builds the HTTP server from the flags and settings.
func newHTTPServer() (*httpapi.Server, string, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *s
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	opts := httpapi.Options{AllowedOrigins: settings.Server.AllowedOrigins}
	if serveMCP {
		mcpServer, err := mcp.NewServer(&mcp.Ports{Dashboard: dashboardService, Query: queryService})
		if err != nil {
			return nil, "", err
		}
		opts.Mount = map[string]http.Handler{"/mcp": mcpServer.Handler()}
	}

	server, err := httpapi.NewServer(&httpapi.Ports{Dashboard: dashboardService, Query: queryService}, opts)
	if err != nil {
		return nil, "", err
	}
	return server, addr, nil
}
