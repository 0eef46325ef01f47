// ABOUTME: MCP server implementation for curio
// ABOUTME: Provides tools, resources, and prompts for AI agents to browse the item of the day

package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/curio/internal/favourites"
	"github.com/harper/curio/internal/feedsync"
)

// Server wraps the MCP server with curio-specific context
type Server struct {
	mcpServer *server.MCPServer
	engine    *feedsync.Engine
	favs      *favourites.Service
	now       func() time.Time
}

// NewServer creates a new MCP server instance
func NewServer(engine *feedsync.Engine, favs *favourites.Service) *Server {
	s := &Server{
		engine: engine,
		favs:   favs,
		now:    time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		"curio",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
