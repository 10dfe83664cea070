package llm

import (
	"fmt"
	"strings"
)

// apiError wraps a provider error and marks whether a retry could help.
type apiError struct {
	err       error
	retryable bool
}

func (e *apiError) Error() string {
	return e.err.Error()
}

func (e *apiError) Unwrap() error {
	return e.err
}

// IsRetryable reports whether the underlying provider error is transient.
func (e *apiError) IsRetryable() bool {
	return e.retryable
}

// transientMarkers identify provider errors worth retrying: rate limits,
// overload responses, and transport failures.
var transientMarkers = []string{
	"429",
	"rate limit",
	"overloaded",
	"500",
	"502",
	"503",
	"504",
	"timeout",
	"connection reset",
	"connection refused",
	"eof",
}

// ClassifyError wraps a provider error so callers can distinguish transient
// failures from permanent ones.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return &apiError{err: fmt.Errorf("llm request failed: %w", err), retryable: true}
		}
	}

	return &apiError{err: fmt.Errorf("llm request failed: %w", err), retryable: false}
}
