// Package mcp exposes the knowledge base over the Model Context
// Protocol, so MCP clients can search support material directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/smartsupport/internal/retriever"
	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes knowledge-base tools.
type Server struct {
	retriever *retriever.Retriever
	store     vectordb.Store
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server over the given retriever and store.
func NewServer(ret *retriever.Retriever, store vectordb.Store) *Server {
	s := &Server{
		retriever: ret,
		store:     store,
	}

	s.mcp = server.NewMCPServer(
		"smartsupport",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchKnowledgeBaseTool, s.handleSearchKnowledgeBase)
	s.mcp.AddTool(knowledgeBaseStatsTool, s.handleKnowledgeBaseStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
