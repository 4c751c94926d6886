// Package tools declares the callable tools offered to the agent and
// dispatches tool-call requests to their handlers.
package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/retriever"
)

// ToolResult is the structured outcome of one tool execution. It is
// serialized into the transcript as a tool-role message and recorded in the
// response-level tool-call log.
type ToolResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Failure builds a failure result with the given message.
func Failure(message string) ToolResult {
	return ToolResult{Success: false, Message: message}
}

// Handler implements one tool. Returned errors are converted to failure
// results by the executor; handlers may also return failure results
// directly.
type Handler func(ctx context.Context, args map[string]any) (ToolResult, error)

// Options selects which optional tools are offered alongside the core set.
type Options struct {
	// IncludeKnowledgeBase adds the search_knowledge_base tool, letting the
	// model decide when to search.
	IncludeKnowledgeBase bool
}

// Registry maps tool names to their definitions and handlers. Definitions
// are registered once at construction and are immutable afterwards.
type Registry struct {
	defs     map[string]llm.ToolDefinition
	handlers map[string]Handler
	order    []string
}

// NewRegistry builds the standard registry. The retriever may be nil, in
// which case the knowledge-base tool is never offered. The mailer and
// weather client back the email and weather tools.
func NewRegistry(ret *retriever.Retriever, mailer Mailer, weather *WeatherClient) *Registry {
	r := &Registry{
		defs:     make(map[string]llm.ToolDefinition),
		handlers: make(map[string]Handler),
	}

	r.mustRegister(scheduleTechnicianDef, scheduleTechnician)
	r.mustRegister(getWeatherDef, getWeatherHandler(weather))
	r.mustRegister(sendConfirmationEmailDef, sendConfirmationEmailHandler(mailer))
	if ret != nil {
		r.mustRegister(searchKnowledgeBaseDef, searchKnowledgeBaseHandler(ret))
	}

	return r
}

// register validates a definition against its handler. Catching a schema
// typo here fails process startup instead of a conversation.
func (r *Registry) register(def llm.ToolDefinition, h Handler) error {
	if def.Name == "" {
		return fmt.Errorf("tool definition has no name")
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("duplicate tool %q", def.Name)
	}
	if h == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if def.Parameters.Type != "object" {
		return fmt.Errorf("tool %q: parameter schema must be an object", def.Name)
	}
	for _, req := range def.Parameters.Required {
		if _, ok := def.Parameters.Properties[req]; !ok {
			return fmt.Errorf("tool %q: required parameter %q is not declared", def.Name, req)
		}
	}

	r.defs[def.Name] = def
	r.handlers[def.Name] = h
	r.order = append(r.order, def.Name)
	return nil
}

func (r *Registry) mustRegister(def llm.ToolDefinition, h Handler) {
	if err := r.register(def, h); err != nil {
		panic(err)
	}
}

// Definitions returns the enabled tool definitions in registration order.
// Core tools are always present; optional tools follow Options.
func (r *Registry) Definitions(opts Options) []llm.ToolDefinition {
	var defs []llm.ToolDefinition
	for _, name := range r.order {
		if name == searchKnowledgeBaseDef.Name && !opts.IncludeKnowledgeBase {
			continue
		}
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Execute dispatches a tool call by name. It never returns a Go error to
// the caller: unknown tools, handler errors and handler panics all become
// failure results, which the agent loop feeds back to the model.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result ToolResult) {
	handler, ok := r.handlers[name]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", name))
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("tools: %s panicked: %v", name, rec)
			result = Failure(fmt.Sprintf("tool execution error: %v", rec))
		}
	}()

	res, err := handler(ctx, args)
	if err != nil {
		return Failure(fmt.Sprintf("tool execution error: %v", err))
	}
	return res
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
