package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest indicates the inbound request did not match the input contract.
var ErrInvalidRequest = errors.New("invalid generation request")

// BackendError indicates the inference backend was unreachable, returned a
// non-success status, or failed mid-stream. StatusCode is zero when the
// failure happened before any HTTP status was received.
type BackendError struct {
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend request failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
