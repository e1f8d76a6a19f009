package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dberman/commitscribe/internal/domain"
	"github.com/dberman/commitscribe/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	generator *domain.GeneratorService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(generator *domain.GeneratorService) *Handler {
	return &Handler{
		generator: generator,
	}
}

// generateRequest is the inbound body of POST /generate. Pointer fields
// distinguish absent keys from empty strings: both keys must be present,
// both values may be blank.
type generateRequest struct {
	CodeDiff        *string `json:"code_diff"`
	UserInstruction *string `json:"user_instruction"`
}

// HandleGenerate processes commit-message generation requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Early validation.
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request.
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.CodeDiff == nil {
		http.Error(w, "code_diff is required", http.StatusBadRequest)
		return
	}

	if req.UserInstruction == nil {
		http.Error(w, "user_instruction is required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("generation request received",
		observability.Int("diff_bytes", len(*req.CodeDiff)),
		observability.Bool("has_instruction", *req.UserInstruction != ""),
	)

	message, err := h.generator.Generate(ctx, &domain.GenerationRequest{
		CodeDiff:        *req.CodeDiff,
		UserInstruction: *req.UserInstruction,
	})
	if err != nil {
		h.writeError(w, logger, err)
		return
	}

	logger.Info("generation succeeded",
		observability.Int("message_bytes", len(message)),
	)

	w.Header().Set("Content-Type", "application/json")
	encodeErr := json.NewEncoder(w).Encode(domain.GenerationResponse{Response: message})
	if encodeErr != nil {
		logger.Error("failed to encode response", observability.Error(encodeErr))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

// writeError maps pipeline failures to HTTP responses. Backend failures keep
// the backend's status when one was received; everything else is a generic
// 500 with the detail logged, not returned.
func (h *Handler) writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		logger.Error("backend call failed", observability.Error(backendErr))

		status := http.StatusInternalServerError
		if backendErr.StatusCode >= http.StatusBadRequest {
			status = backendErr.StatusCode
		}
		http.Error(w, "error fetching response from inference backend", status)
		return
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Error("generation failed", observability.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
