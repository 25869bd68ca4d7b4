// ABOUTME: MCP server setup for the Beeminder adapter.
// ABOUTME: Wraps the MCP server with the Beeminder API client.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/beeminder/internal/api"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with Beeminder API access. All tools and
// resources are registered at construction; nothing is added or removed
// afterwards.
type Server struct {
	mcpServer *mcp.Server
	client    *api.Client
}

// NewServer creates a new MCP server backed by the given API client.
func NewServer(client *api.Client) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "beeminder",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)

	s := &Server{
		mcpServer: mcpServer,
		client:    client,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
