// Package upstream provides the client for the conversational webhook the
// gateway forwards chat input to.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEndpointNotConfigured is returned when no webhook endpoint is set.
	ErrEndpointNotConfigured = errors.New("upstream endpoint not configured")

	// ErrResponseTooLarge is returned when a reply exceeds the body limit.
	// A cut-off body would no longer decode, so it is never normalized.
	ErrResponseTooLarge = errors.New("upstream response too large")
)

// Request is the body POSTed to the webhook.
type Request struct {
	ChatInput string `json:"chatInput"`
	SessionID string `json:"sessionId"`
}

// Response is a raw webhook reply. Body is left undecoded for the normalizer.
type Response struct {
	StatusCode int
	Body       []byte
	Latency    time.Duration
}

// StatusError reports a non-2xx webhook reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Client sends chat input upstream.
type Client interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// FailureReason classifies err for metrics and the exchange log.
func FailureReason(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEndpointNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrDailyLimitReached):
		return "rate_limited"
	case errors.Is(err, ErrResponseTooLarge):
		return "too_large"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
