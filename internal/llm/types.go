package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation. Assistant messages
// may carry tool-call requests; tool messages carry the result for one call
// and reference it via ToolCallID.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a request from the model to invoke a named tool. Arguments is
// the raw JSON payload as emitted by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition describes a callable tool offered to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  Schema
}

// Schema is the JSON Schema object describing a tool's parameters.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single named tool parameter.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// CompletionRequest contains the parameters for an LLM completion request.
// When Tools is non-empty the model may answer with tool-call requests
// instead of plain content (tool choice is left on auto).
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolDefinition
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of an LLM completion request.
// ToolCalls preserves the order the model emitted them in.
type CompletionResponse struct {
	Content      string
	ToolCalls    []ToolCall
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
