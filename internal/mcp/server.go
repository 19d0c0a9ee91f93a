// ABOUTME: MCP server setup for the longevity metrics store.
// ABOUTME: Wraps the MCP server with storage and the derived-metrics engine.
package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/models"
	"github.com/harperreed/longevity/internal/storage"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	engine    *engine.Engine
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "longevity",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		engine:    engine.New(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// dashboardState loads everything from storage and evaluates the derived
// metrics before computing per-metric status.
func (s *Server) dashboardState(now time.Time) (map[string]models.MetricStatusData, []models.MetricDefinition, error) {
	metrics, err := s.repo.ListMetricDefs()
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, nil, err
	}

	processed := s.engine.ProcessEntries(entries, metrics)
	return engine.DashboardState(processed, metrics, now), metrics, nil
}
