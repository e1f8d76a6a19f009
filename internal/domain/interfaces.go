package domain

import "context"

// CompletionBackend is the port to the inference server.
type CompletionBackend interface {
	// Generate sends a prompt and returns the fully aggregated completion text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
