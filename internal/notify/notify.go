// Package notify carries user-facing notifications and the in-process
// data-changed broadcast.
package notify

import (
	"github.com/anhdng/songngu/internal/logger"
)

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Action is an actionable next step attached to a notification
// ("retry", "clear old data", "view details").
type Action struct {
	Label string
	Run   func()
}

// Notifier is the fire-and-forget notification sink. Callers never consume
// a return value: a failed notification must not fail the operation that
// produced it.
type Notifier interface {
	Notify(kind Kind, title, message string, actions ...Action)
}

// LogNotifier renders notifications into the structured log. It is the
// default sink for headless deployments; a UI-connected deployment swaps in
// its own Notifier.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(kind Kind, title, message string, actions ...Action) {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.Label
	}
	fields := []logger.Field{
		logger.String("title", title),
		logger.String("message", message),
		logger.Strings("actions", labels),
	}
	switch kind {
	case Error:
		n.log.Error("notification", fields...)
	case Warning:
		n.log.Warn("notification", fields...)
	default:
		n.log.Info("notification", fields...)
	}
}

// Nop discards all notifications. Used in tests.
type Nop struct{}

func (Nop) Notify(Kind, string, string, ...Action) {}
