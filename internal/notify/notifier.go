// Package notify defines the notification interface and implementations
// for upstream failure alerts.
package notify

import (
	"context"
	"time"
)

// FailureAlert describes a chat send that never produced an upstream payload.
type FailureAlert struct {
	SessionID  string
	ChatInput  string
	Endpoint   string
	Reason     string // upstream.FailureReason value
	HTTPStatus int
	Error      string
	Latency    time.Duration
	OccurredAt time.Time
}

// Notifier defines the interface for sending upstream failure notifications.
type Notifier interface {
	SendFailure(ctx context.Context, alert *FailureAlert) error
}
