package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchKnowledgeBaseTool defines the search_knowledge_base MCP tool.
var searchKnowledgeBaseTool = mcp.NewTool("search_knowledge_base",
	mcp.WithDescription("Search the water-company knowledge base semantically. Returns the most relevant passages with their source documents."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of passages to return (default 3)"),
	),
)

// knowledgeBaseStatsTool defines the knowledge_base_stats MCP tool.
var knowledgeBaseStatsTool = mcp.NewTool("knowledge_base_stats",
	mcp.WithDescription("Get the number of indexed chunks and the collection name."),
)
