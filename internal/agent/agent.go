// Package agent drives a conversation through the language model,
// intercepting tool-call requests and feeding results back until the model
// produces a plain answer or the iteration budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/tools"
)

// maxToolIterations bounds the model/tool cycle for one request.
const maxToolIterations = 5

// apologyMessage is the terminal answer when the budget is exhausted.
// Deliberate degrade-gracefully policy, not an error.
const apologyMessage = "מצטער, לא הצלחתי להשלים את הבקשה כרגע. נסו לנסח מחדש את הפנייה או פנו למוקד השירות שלנו."

// toolGuidance is appended to every behavior profile when tools are enabled.
const toolGuidance = `יש לך גישה לכלים. השתמש בהם כשצריך:
- קבע טכנאי כשהלקוח מדווח על תקלה או מבקש ביקור.
- שלח אימייל אישור רק אחרי שהלקוח מסר כתובת אימייל.
- חפש במאגר הידע כשנדרש מידע עובדתי על שירותי החברה.
אחרי שהכלי מחזיר תוצאה, שלב אותה בתשובה ללקוח בעברית.`

// ToolCallRecord is one entry in the response-level tool-call log, in the
// exact order tools were invoked.
type ToolCallRecord struct {
	Tool      string           `json:"tool"`
	Arguments map[string]any   `json:"arguments"`
	Result    tools.ToolResult `json:"result"`
}

// Result is the outcome of one agent run.
type Result struct {
	Message   string
	ToolCalls []ToolCallRecord
}

// Agent is the turn-based controller. It holds no per-conversation state;
// one Agent serves any number of concurrent conversations.
type Agent struct {
	provider    llm.Provider
	registry    *tools.Registry
	temperature float64
	maxTokens   int
}

// New creates an Agent over the given model provider and tool registry.
func New(provider llm.Provider, registry *tools.Registry) *Agent {
	return &Agent{
		provider:    provider,
		registry:    registry,
		temperature: 0.7,
		maxTokens:   1000,
	}
}

// Run processes the conversation with tools enabled. The behavior profile
// plus fixed tool guidance is prepended as the system message. Tool calls
// are executed sequentially in the order the model emitted them; later
// calls in the same turn may depend on earlier ones having landed.
func (a *Agent) Run(ctx context.Context, messages []llm.Message, systemPrompt string, opts tools.Options) (*Result, error) {
	defs := a.registry.Definitions(opts)

	transcript := make([]llm.Message, 0, len(messages)+1)
	transcript = append(transcript, llm.Message{
		Role:    llm.RoleSystem,
		Content: systemPrompt + "\n\n" + toolGuidance,
	})
	transcript = append(transcript, messages...)

	var records []ToolCallRecord

	for i := 0; i < maxToolIterations; i++ {
		resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
			Messages:    transcript,
			Tools:       defs,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("model completion: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			return &Result{Message: resp.Content, ToolCalls: records}, nil
		}

		// The model's tool-call turn goes on the transcript verbatim.
		transcript = append(transcript, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			args, result := a.executeCall(ctx, call)
			records = append(records, ToolCallRecord{
				Tool:      call.Name,
				Arguments: args,
				Result:    result,
			})

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"success":false,"message":"failed to serialize tool result"}`)
			}
			transcript = append(transcript, llm.Message{
				Role:       llm.RoleTool,
				Content:    string(payload),
				ToolCallID: call.ID,
			})
		}
	}

	log.Printf("agent: iteration budget exhausted after %d rounds, %d tool calls", maxToolIterations, len(records))
	return &Result{Message: apologyMessage, ToolCalls: records}, nil
}

// executeCall parses the model's argument payload and dispatches through
// the registry. Malformed arguments become a failure result fed back to the
// model, same as any other tool failure.
func (a *Agent) executeCall(ctx context.Context, call llm.ToolCall) (map[string]any, tools.ToolResult) {
	args := make(map[string]any)
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			log.Printf("agent: tool %s sent malformed arguments: %v", call.Name, err)
			return args, tools.Failure(fmt.Sprintf("invalid tool arguments: %v", err))
		}
	}

	log.Printf("agent: executing tool %s", call.Name)
	return args, a.registry.Execute(ctx, call.Name, args)
}
