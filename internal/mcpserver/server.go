// internal/mcpserver/server.go
// Package mcpserver exposes the capability dataset as MCP tools over stdio.
// Tools: list_capabilities, capability_stats, dataset_summary, capability_figure
package mcpserver

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mwiater/capdash/internal/dashboard"
	"github.com/mwiater/capdash/internal/logging"
)

// Name is reported to MCP clients during initialization.
const Name = "capdash"

// Server holds the loaded data behind the tool handlers.
type Server struct {
	snap     dashboard.Snapshot
	defaults []string
	mcp      *server.MCPServer
}

// New registers every tool against snap. Default entries missing from the
// dataset are dropped.
func New(snap dashboard.Snapshot, defaults []string, version string) *Server {
	known, unknown := snap.Dataset.FilterKnown(defaults)
	if len(unknown) > 0 {
		logging.LogEvent("dropping unknown default capabilities: %v", unknown)
	}
	if known == nil {
		known = []string{}
	}

	s := &Server{
		snap:     snap,
		defaults: known,
		mcp:      server.NewMCPServer(Name, version, server.WithToolCapabilities(true)),
	}
	s.mcp.AddTool(listCapabilitiesTool(), s.handleListCapabilities())
	s.mcp.AddTool(capabilityStatsTool(), s.handleCapabilityStats())
	s.mcp.AddTool(datasetSummaryTool(), s.handleDatasetSummary())
	s.mcp.AddTool(capabilityFigureTool(), s.handleCapabilityFigure())
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve reads JSON-RPC requests from in and writes responses to out until
// ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.LogEvent("mcp server ready on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
