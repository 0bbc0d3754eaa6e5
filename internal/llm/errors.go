package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model answered but the payload was
// unusable (no choices, empty text).
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or
// rejected the request. Status carries the upstream HTTP status when the
// provider supplied one.
type ErrProviderUnavailable struct {
	Status int
	Err    error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrTimeout indicates a model call did not finish within its deadline.
type ErrTimeout struct {
	After time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out after %s", e.After)
}

func (e *ErrTimeout) Unwrap() error { return context.DeadlineExceeded }

// HTTPStatus picks the status the HTTP layer should answer with for a
// gateway error: the upstream status when one was supplied, 429 for rate
// limits, 504 for timeouts, 502 for other upstream failures and 500 for
// anything that did not come from the gateway.
func HTTPStatus(err error) int {
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return http.StatusTooManyRequests
	}
	var to *ErrTimeout
	if errors.As(err, &to) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		if unavail.Status >= 400 {
			return unavail.Status
		}
		return http.StatusBadGateway
	}
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return http.StatusBadGateway
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
