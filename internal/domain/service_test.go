package domain_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dberman/commitscribe/internal/domain"
)

// stubBackend returns queued results in order and counts calls.
type stubBackend struct {
	results []string
	err     error
	calls   int
	prompts []string
}

func (s *stubBackend) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)

	if s.err != nil {
		return "", s.err
	}

	if len(s.results) == 0 {
		return "", nil
	}

	result := s.results[0]
	s.results = s.results[1:]
	return result, nil
}

// spyPublisher records published event types.
type spyPublisher struct {
	events []string
}

func (s *spyPublisher) Publish(_ context.Context, eventType string, _ map[string]interface{}) {
	s.events = append(s.events, eventType)
}

func TestGenerate_ReturnsTrimmedBackendResult(t *testing.T) {
	backend := &stubBackend{results: []string{"  feat: add x  \n"}}
	service := domain.NewGeneratorService(backend, nil)

	result, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff:        "some diff",
		UserInstruction: "",
	})

	require.NoError(t, err)
	require.Equal(t, "feat: add x", result)
	require.Equal(t, 1, backend.calls)
}

func TestGenerate_RetriesOnceOnEmptyResult(t *testing.T) {
	backend := &stubBackend{results: []string{"   ", "fix: second attempt"}}
	events := &spyPublisher{}
	service := domain.NewGeneratorService(backend, events)

	result, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff: "some diff",
	})

	require.NoError(t, err)
	require.Equal(t, "fix: second attempt", result)
	require.Equal(t, 2, backend.calls)
	require.Contains(t, events.events, "empty_result_retry")
}

func TestGenerate_RetryUsesSamePrompt(t *testing.T) {
	backend := &stubBackend{results: []string{"", "ok"}}
	service := domain.NewGeneratorService(backend, nil)

	_, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff:        "diff",
		UserInstruction: "instruction",
	})

	require.NoError(t, err)
	require.Len(t, backend.prompts, 2)
	require.Equal(t, backend.prompts[0], backend.prompts[1])
}

func TestGenerate_EmptyAfterRetryIsNotAnError(t *testing.T) {
	backend := &stubBackend{results: []string{"", ""}}
	service := domain.NewGeneratorService(backend, nil)

	result, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff: "diff",
	})

	require.NoError(t, err)
	require.Empty(t, result)
	require.Equal(t, 2, backend.calls)
}

func TestGenerate_BackendErrorIsNotRetried(t *testing.T) {
	backend := &stubBackend{err: &domain.BackendError{StatusCode: http.StatusServiceUnavailable}}
	service := domain.NewGeneratorService(backend, nil)

	_, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff: "diff",
	})

	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Equal(t, http.StatusServiceUnavailable, backendErr.StatusCode)
	require.Equal(t, 1, backend.calls)
}

func TestGenerate_NilRequestIsRejected(t *testing.T) {
	service := domain.NewGeneratorService(&stubBackend{}, nil)

	_, err := service.Generate(context.Background(), nil)

	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestGenerate_PublishesLifecycleEvents(t *testing.T) {
	backend := &stubBackend{results: []string{"docs: update readme"}}
	events := &spyPublisher{}
	service := domain.NewGeneratorService(backend, events)

	_, err := service.Generate(context.Background(), &domain.GenerationRequest{
		CodeDiff: "diff",
	})

	require.NoError(t, err)
	require.Equal(t, []string{"generation_started", "generation_completed"}, events.events)
}
