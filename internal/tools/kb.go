package tools

import (
	"context"
	"log"

	"github.com/ziadkadry99/smartsupport/internal/retriever"
)

// searchKnowledgeBaseHandler delegates to the retriever. The "found" flag
// distinguishes "searched, nothing relevant" from "search failed": the agent
// loop surfaces sources to the caller from the result data.
func searchKnowledgeBaseHandler(ret *retriever.Retriever) Handler {
	return func(ctx context.Context, args map[string]any) (ToolResult, error) {
		query := stringArg(args, "query")
		if query == "" {
			return Failure("query is required"), nil
		}

		contextText, sources, err := ret.Query(ctx, query, 0)
		if err != nil {
			log.Printf("tools: knowledge base search %q: %v", query, err)
			return ToolResult{
				Success: false,
				Message: "החיפוש במאגר הידע נכשל",
				Data:    map[string]any{"found": false},
			}, nil
		}

		if contextText == "" {
			return ToolResult{
				Success: true,
				Message: "לא נמצא מידע רלוונטי במאגר הידע",
				Data:    map[string]any{"found": false},
			}, nil
		}

		return ToolResult{
			Success: true,
			Message: "נמצא מידע רלוונטי במאגר הידע",
			Data: map[string]any{
				"found":   true,
				"context": contextText,
				"sources": sources,
			},
		}, nil
	}
}
