// Package ollama implements the CompletionBackend port against an Ollama
// generate endpoint. The backend answers with newline-delimited JSON; the
// client reads the body incrementally and stops as soon as the final chunk
// is observed.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dberman/commitscribe/internal/domain"
	"github.com/dberman/commitscribe/internal/observability"
)

// Client wraps the HTTP client for Ollama API calls.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Ollama HTTP client (DI constructor).
func NewClient(cfg *Config) *Client {
	return &Client{
		url:   cfg.URL,
		model: cfg.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Generate sends the prompt to the backend and aggregates the streamed body
// into a single string. Cancellation of ctx tears down the in-flight read.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	logger := observability.FromContext(ctx)

	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Info("sending request to inference backend",
		observability.String("model", c.model),
		observability.Int("prompt_bytes", len(prompt)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.BackendError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &domain.BackendError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	text, err := aggregate(ctx, resp.Body)
	if err != nil {
		return "", &domain.BackendError{Err: err}
	}

	return text, nil
}
