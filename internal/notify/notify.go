// Package notify delivers out-of-band messages about agent lifecycle
// events. Delivery is fire-and-forget: a sink that fails to deliver logs
// the failure and the caller never sees it.
package notify

import (
	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/logger"
)

// Notifier is a sink for human-facing notifications.
type Notifier interface {
	Notify(subject, body string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(subject, body string) {}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(l *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: l.Named("notify")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(subject, body string) {
	n.logger.Info("notification",
		zap.String("subject", subject),
		zap.String("body", body),
	)
}
