package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dberman/commitscribe/internal/observability"
)

// maxLineBytes bounds a single NDJSON line; Ollama chunks are small but the
// default Scanner limit of 64K is too tight for large final chunks.
const maxLineBytes = 1 << 20

// streamChunk is one line of the backend's newline-delimited JSON body.
// Fields beyond response/done are ignored.
type streamChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// aggregate reduces a newline-delimited JSON body to the concatenation of its
// response fragments, in arrival order. Reading stops the moment a chunk
// carries done=true; the rest of the stream is not drained. Malformed lines
// are logged and skipped, never fatal. A backend that never sends done falls
// through to natural EOF.
func aggregate(ctx context.Context, body io.Reader) (string, error) {
	logger := observability.FromContext(ctx)

	var combined strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			logger.Warn("failed to parse stream line",
				observability.String("line", line),
				observability.Error(err),
			)
			continue
		}

		combined.WriteString(chunk.Response)

		if chunk.Done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed reading backend stream: %w", err)
	}

	return combined.String(), nil
}
