package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleSearchKnowledgeBase performs a semantic search over the knowledge base.
func (s *Server) handleSearchKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	contextText, sources, err := s.retriever.Query(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if contextText == "" {
		return mcp.NewToolResultText("No results found in the knowledge base."), nil
	}

	var sb strings.Builder
	sb.WriteString(contextText)
	sb.WriteString("\n\nSources: ")
	sb.WriteString(strings.Join(sources, ", "))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleKnowledgeBaseStats reports the index size.
func (s *Server) handleKnowledgeBaseStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.store.Stats()
	return mcp.NewToolResultText(fmt.Sprintf("Collection %q holds %d chunks.", stats.Collection, stats.Count)), nil
}
