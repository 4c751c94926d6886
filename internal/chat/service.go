// Package chat implements the conversation surface: agentic chat with
// function calling, legacy context-injection chat, and a plain completion
// mode with no retrieval at all.
package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/smartsupport/internal/agent"
	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/prompts"
	"github.com/ziadkadry99/smartsupport/internal/retriever"
	"github.com/ziadkadry99/smartsupport/internal/tools"
)

// Request is one chat turn from the client. The full conversation history
// travels with every request; the server keeps no session state.
type Request struct {
	Messages  []llm.Message `json:"messages"`
	UseRAG    *bool         `json:"use_rag,omitempty"`
	UseTools  bool          `json:"use_tools,omitempty"`
	PromptKey string        `json:"prompt_key,omitempty"`
}

// ragEnabled reports the retrieval toggle, defaulting to on.
func (r *Request) ragEnabled() bool {
	return r.UseRAG == nil || *r.UseRAG
}

// Response is the assistant's reply for one turn.
type Response struct {
	Message   string                 `json:"message"`
	Sources   []string               `json:"sources,omitempty"`
	ToolCalls []agent.ToolCallRecord `json:"tool_calls,omitempty"`
}

// Service routes chat turns to the agent or to a direct completion.
type Service struct {
	provider  llm.Provider
	agent     *agent.Agent
	retriever *retriever.Retriever
}

// New builds a chat service. retriever may be nil, in which case the
// legacy injection mode degrades to plain chat.
func New(provider llm.Provider, registry *tools.Registry, ret *retriever.Retriever) *Service {
	return &Service{
		provider:  provider,
		agent:     agent.New(provider, registry),
		retriever: ret,
	}
}

// Respond answers one chat turn. With tools enabled the agent decides
// which tools to call, and retrieval is just one tool among them. With
// tools disabled and retrieval on, context for the last user message is
// injected directly into the transcript.
func (s *Service) Respond(ctx context.Context, req *Request) (*Response, error) {
	systemPrompt := prompts.Get(req.PromptKey)

	if req.UseTools {
		result, err := s.agent.Run(ctx, req.Messages, systemPrompt, tools.Options{
			IncludeKnowledgeBase: req.ragEnabled() && s.retriever != nil,
		})
		if err != nil {
			return nil, err
		}
		return &Response{
			Message:   result.Message,
			Sources:   sourcesFromLog(result.ToolCalls),
			ToolCalls: result.ToolCalls,
		}, nil
	}

	var contextText string
	var sources []string
	if req.ragEnabled() && s.retriever != nil {
		if query := lastUserMessage(req.Messages); query != "" {
			var err error
			contextText, sources, err = s.retriever.Query(ctx, query, 0)
			if err != nil {
				// Retrieval trouble downgrades to plain chat.
				log.Printf("chat: retrieval failed: %v", err)
				contextText, sources = "", nil
			}
		}
	}

	message, err := s.complete(ctx, req.Messages, systemPrompt, contextText)
	if err != nil {
		return nil, err
	}
	return &Response{Message: message, Sources: sources}, nil
}

// Simple answers without retrieval or tools.
func (s *Service) Simple(ctx context.Context, req *Request) (*Response, error) {
	message, err := s.complete(ctx, req.Messages, prompts.Get(req.PromptKey), "")
	if err != nil {
		return nil, err
	}
	return &Response{Message: message}, nil
}

func (s *Service) complete(ctx context.Context, messages []llm.Message, systemPrompt, contextText string) (string, error) {
	transcript := make([]llm.Message, 0, len(messages)+2)
	transcript = append(transcript, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	if contextText != "" {
		transcript = append(transcript, llm.Message{
			Role:    llm.RoleSystem,
			Content: "Use the following context to answer the user's question:\n\n" + contextText,
		})
	}
	transcript = append(transcript, messages...)

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    transcript,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return resp.Content, nil
}

// sourcesFromLog pulls the sources of the first knowledge-base search
// that returned any.
func sourcesFromLog(records []agent.ToolCallRecord) []string {
	for _, rec := range records {
		if rec.Tool != "search_knowledge_base" || rec.Result.Data == nil {
			continue
		}
		if sources, ok := rec.Result.Data["sources"].([]string); ok && len(sources) > 0 {
			return sources
		}
	}
	return nil
}

func lastUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
