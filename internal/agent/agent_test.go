package agent

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/tools"
)

// scriptedProvider returns canned responses in order, repeating the last
// one when the script runs out. It records every request.
type scriptedProvider struct {
	script []*llm.CompletionResponse
	calls  []llm.CompletionRequest
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls = append(p.calls, req)
	idx := len(p.calls) - 1
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	return p.script[idx], nil
}

func plainResponse(text string) *llm.CompletionResponse {
	return &llm.CompletionResponse{Content: text, FinishReason: "stop"}
}

func toolResponse(calls ...llm.ToolCall) *llm.CompletionResponse {
	return &llm.CompletionResponse{ToolCalls: calls, FinishReason: "tool_calls"}
}

func newTestAgent(script ...*llm.CompletionResponse) (*Agent, *scriptedProvider) {
	provider := &scriptedProvider{script: script}
	registry := tools.NewRegistry(nil, nil, nil)
	return New(provider, registry), provider
}

func TestPlainResponseTerminatesFirstIteration(t *testing.T) {
	a, provider := newTestAgent(plainResponse("שלום, איך אפשר לעזור?"))

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "שלום"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Message != "שלום, איך אפשר לעזור?" {
		t.Errorf("unexpected final message %q", result.Message)
	}
	if len(result.ToolCalls) != 0 {
		t.Errorf("expected empty tool-call log, got %d entries", len(result.ToolCalls))
	}
	if len(provider.calls) != 1 {
		t.Errorf("expected exactly 1 model call, got %d", len(provider.calls))
	}
}

func TestSystemMessageCarriesProfileAndGuidance(t *testing.T) {
	a, provider := newTestAgent(plainResponse("ok"))

	if _, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	}, "you are a support rep", tools.Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	first := provider.calls[0].Messages[0]
	if first.Role != llm.RoleSystem {
		t.Fatalf("expected system message first, got role %s", first.Role)
	}
	if !strings.Contains(first.Content, "you are a support rep") {
		t.Error("system message missing the behavior profile")
	}
	if !strings.Contains(first.Content, "גישה לכלים") {
		t.Error("system message missing the tool guidance")
	}
	if len(provider.calls[0].Tools) != 3 {
		t.Errorf("expected 3 core tool definitions offered, got %d", len(provider.calls[0].Tools))
	}
}

func TestUnknownToolContinuesLoop(t *testing.T) {
	a, _ := newTestAgent(
		toolResponse(llm.ToolCall{ID: "c1", Name: "summon_dragon", Arguments: `{}`}),
		plainResponse("done without the dragon"),
	)

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "help"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Message != "done without the dragon" {
		t.Errorf("expected the loop to continue to a final answer, got %q", result.Message)
	}
	if len(result.ToolCalls) != 1 {
		t.Fatalf("expected 1 logged call, got %d", len(result.ToolCalls))
	}
	if result.ToolCalls[0].Result.Success {
		t.Error("expected a failure-shaped result for the unknown tool")
	}
	if !strings.Contains(result.ToolCalls[0].Result.Message, "unknown tool") {
		t.Errorf("expected 'unknown tool' in result, got %q", result.ToolCalls[0].Result.Message)
	}
}

func TestMalformedArgumentsBecomeFailureResult(t *testing.T) {
	a, _ := newTestAgent(
		toolResponse(llm.ToolCall{ID: "c1", Name: "schedule_technician", Arguments: `{not json`}),
		plainResponse("recovered"),
	)

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "help"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Message != "recovered" {
		t.Errorf("expected loop to recover, got %q", result.Message)
	}
	if result.ToolCalls[0].Result.Success {
		t.Error("expected failure result for malformed arguments")
	}
}

func TestIterationBudgetExhaustion(t *testing.T) {
	// The model always asks for a tool, never answering.
	a, provider := newTestAgent(
		toolResponse(llm.ToolCall{ID: "c", Name: "schedule_technician", Arguments: `{"reason":"עוד בדיקה"}`}),
	)

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "loop forever"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Message != apologyMessage {
		t.Errorf("expected the fixed apology, got %q", result.Message)
	}
	if len(provider.calls) != 5 {
		t.Errorf("expected exactly 5 model calls, got %d", len(provider.calls))
	}
	if len(result.ToolCalls) < 5 {
		t.Errorf("expected at least 5 logged tool calls, got %d", len(result.ToolCalls))
	}
}

func TestToolCallLogPreservesOrder(t *testing.T) {
	a, _ := newTestAgent(
		toolResponse(
			llm.ToolCall{ID: "c1", Name: "schedule_technician", Arguments: `{"reason":"נזילה"}`},
			llm.ToolCall{ID: "c2", Name: "no_such_tool", Arguments: `{}`},
		),
		toolResponse(llm.ToolCall{ID: "c3", Name: "schedule_technician", Arguments: `{"reason":"מונה"}`}),
		plainResponse("final"),
	)

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "do things"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"schedule_technician", "no_such_tool", "schedule_technician"}
	if len(result.ToolCalls) != len(want) {
		t.Fatalf("expected %d log entries, got %d", len(want), len(result.ToolCalls))
	}
	for i, name := range want {
		if result.ToolCalls[i].Tool != name {
			t.Errorf("entry %d: expected %s, got %s", i, name, result.ToolCalls[i].Tool)
		}
	}
}

func TestToolResultsFedBackOnTranscript(t *testing.T) {
	a, provider := newTestAgent(
		toolResponse(llm.ToolCall{ID: "call-7", Name: "schedule_technician", Arguments: `{"reason":"נזילה"}`}),
		plainResponse("done"),
	)

	if _, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "יש נזילה"},
	}, "profile", tools.Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	second := provider.calls[1].Messages
	assistant := second[len(second)-2]
	toolMsg := second[len(second)-1]

	if assistant.Role != llm.RoleAssistant || len(assistant.ToolCalls) != 1 {
		t.Error("expected the assistant tool-call turn on the transcript")
	}
	if toolMsg.Role != llm.RoleTool || toolMsg.ToolCallID != "call-7" {
		t.Errorf("expected a tool message referencing call-7, got role=%s id=%s", toolMsg.Role, toolMsg.ToolCallID)
	}
	if !strings.Contains(toolMsg.Content, `"success":true`) {
		t.Errorf("expected serialized success result, got %q", toolMsg.Content)
	}
}

func TestLeakScenarioSchedulesTechnician(t *testing.T) {
	a, _ := newTestAgent(
		toolResponse(llm.ToolCall{ID: "c1", Name: "schedule_technician", Arguments: `{"reason":"נזילה במטבח"}`}),
		plainResponse("קבעתי לך טכנאי, מספר האישור בהודעה."),
	)

	result, err := a.Run(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "יש לי נזילה במטבח"},
	}, "profile", tools.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Message == "" {
		t.Error("expected a non-empty final message")
	}

	var scheduled *ToolCallRecord
	for i := range result.ToolCalls {
		if result.ToolCalls[i].Tool == "schedule_technician" {
			scheduled = &result.ToolCalls[i]
		}
	}
	if scheduled == nil {
		t.Fatal("expected a schedule_technician entry in the tool-call log")
	}

	conf, _ := scheduled.Result.Data["confirmation_number"].(string)
	if !regexp.MustCompile(`^TEC-\d{5}$`).MatchString(conf) {
		t.Errorf("expected a confirmation number, got %q", conf)
	}
}
