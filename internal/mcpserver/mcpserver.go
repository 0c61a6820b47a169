package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/statcalc/internal/service/analysis"
)

// Server wraps the MCP server and registers the statcalc tools.
type Server struct {
	server  *mcp.Server
	service *analysis.Service
}

// NewServer creates a new MCP server with all statcalc tools registered.
// A nil service is replaced by one built from the discovered config.
func NewServer(version string, svc *analysis.Service) *Server {
	if version == "" {
		version = "dev"
	}
	if svc == nil {
		svc = analysis.New()
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "statcalc",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server, service: svc}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_statistics",
		Description: describeComputeStatistics(),
	}, s.handleComputeStatistics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe_file",
		Description: describeDescribeFile(),
	}, s.handleDescribeFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_columns",
		Description: describeListColumns(),
	}, s.handleListColumns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe_batch",
		Description: describeDescribeBatch(),
	}, s.handleDescribeBatch)
}
