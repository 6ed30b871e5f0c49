// ABOUTME: MCP server setup for the AGE-WELL wellness tracker.
// ABOUTME: Wraps the MCP server around the tracker service.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	svc       *tracker.Service
	logger    *logrus.Logger
	now       func() time.Time
}

// NewServer creates a new MCP server over svc.
func NewServer(svc *tracker.Service, logger *logrus.Logger) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "agewell",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		logger:    logger,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	s.logger.WithError(err).Debug("MCP server stopped")
	return err
}

func (s *Server) today() time.Time {
	return models.Truncate(s.now())
}
