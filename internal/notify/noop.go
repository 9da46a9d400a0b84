package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpNotifier{log: log}
}

// SendFailure logs and discards a failure alert.
func (n *NoOpNotifier) SendFailure(_ context.Context, alert *FailureAlert) error {
	n.log.Debug("notification discarded (no backend configured)",
		"session_id", alert.SessionID,
		"reason", alert.Reason,
		"status", alert.HTTPStatus,
	)
	return nil
}
