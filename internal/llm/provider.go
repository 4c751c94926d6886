package llm

import "context"

// Provider is a chat model. The agent loop and the plain completion path
// both talk to the model through this interface, so tests can script
// responses and production can layer a rate limiter on top.
type Provider interface {
	// Complete runs one model call over the given transcript.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the backing model, used in logs and banners.
	Name() string
}
