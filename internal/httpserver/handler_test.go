package httpserver //nolint:testpackage // exercises the unexported request DTO

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dberman/commitscribe/internal/domain"
)

// stubBackend returns queued results in order and counts calls.
type stubBackend struct {
	results []string
	err     error
	calls   int
}

func (s *stubBackend) Generate(_ context.Context, _ string) (string, error) {
	s.calls++

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

func newTestHandler(backend domain.CompletionBackend) *Handler {
	return NewHandler(domain.NewGeneratorService(backend, nil))
}

func postGenerate(handler *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	return w
}

func TestHandleGenerate_ReturnsCommitMessage(t *testing.T) {
	handler := newTestHandler(&stubBackend{results: []string{"feat: add parser\n"}})

	w := postGenerate(handler, `{"code_diff":"+func Parse()","user_instruction":""}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp domain.GenerationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "feat: add parser", resp.Response)
}

func TestHandleGenerate_MissingCodeDiffIsBadRequest(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	w := postGenerate(handler, `{"user_instruction":"be brief"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "code_diff is required")
}

func TestHandleGenerate_MissingUserInstructionIsBadRequest(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	w := postGenerate(handler, `{"code_diff":"+x"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "user_instruction is required")
}

func TestHandleGenerate_BlankFieldsAreAccepted(t *testing.T) {
	handler := newTestHandler(&stubBackend{results: []string{"chore: noop"}})

	w := postGenerate(handler, `{"code_diff":"","user_instruction":""}`)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGenerate_InvalidJSONIsBadRequest(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	w := postGenerate(handler, `not json at all`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerate_WrongFieldTypeIsBadRequest(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	w := postGenerate(handler, `{"code_diff":42,"user_instruction":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerate_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleGenerate_BackendStatusIsSurfacedWithoutRetry(t *testing.T) {
	backend := &stubBackend{err: &domain.BackendError{StatusCode: http.StatusServiceUnavailable}}
	handler := newTestHandler(backend)

	w := postGenerate(handler, `{"code_diff":"+x","user_instruction":""}`)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, 1, backend.calls)
	require.NotContains(t, w.Body.String(), "503") // short reason, no echoed detail
}

func TestHandleGenerate_TransportFailureIsInternalError(t *testing.T) {
	backend := &stubBackend{err: &domain.BackendError{Err: context.DeadlineExceeded}}
	handler := newTestHandler(backend)

	w := postGenerate(handler, `{"code_diff":"+x","user_instruction":""}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleGenerate_EmptyFirstResultTriggersSecondBackendCall(t *testing.T) {
	backend := &stubBackend{results: []string{"", "fix: retry worked"}}
	handler := newTestHandler(backend)

	w := postGenerate(handler, `{"code_diff":"+x","user_instruction":""}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, backend.calls)

	var resp domain.GenerationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "fix: retry worked", resp.Response)
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(&stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.HandleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
