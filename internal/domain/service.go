package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/dberman/commitscribe/internal/observability"
	"github.com/dberman/commitscribe/internal/prompt"
)

// GeneratorService orchestrates a single generation pipeline: build the
// prompt, call the backend, and retry once when the result comes back empty.
type GeneratorService struct {
	backend CompletionBackend
	events  EventPublisher
}

// NewGeneratorService creates a new generator service (DI constructor).
func NewGeneratorService(backend CompletionBackend, events EventPublisher) *GeneratorService {
	return &GeneratorService{
		backend: backend,
		events:  events,
	}
}

// Generate produces a commit message for the given request.
func (s *GeneratorService) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request cannot be nil", ErrInvalidRequest)
	}

	logger := observability.FromContext(ctx)

	built := prompt.Build(req.CodeDiff, req.UserInstruction)

	s.publish(ctx, "generation_started", map[string]interface{}{
		"diff_bytes":      len(req.CodeDiff),
		"has_instruction": req.UserInstruction != "",
	})

	result, err := s.backend.Generate(ctx, built)
	if err != nil {
		return "", err
	}
	result = strings.TrimSpace(result)

	// Content-based retry: one more attempt when the model produced nothing.
	// Backend errors are never retried.
	if result == "" {
		logger.Info("backend returned empty result, retrying once")
		s.publish(ctx, "empty_result_retry", nil)

		result, err = s.backend.Generate(ctx, built)
		if err != nil {
			return "", err
		}
		result = strings.TrimSpace(result)
	}

	s.publish(ctx, "generation_completed", map[string]interface{}{
		"message_bytes": len(result),
	})

	return result, nil
}

func (s *GeneratorService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}
