package events

import (
	"time"

	"github.com/emberfield/crosstalk/topic"
)

// Toast event topics.
const (
	// TopicToastShow is published to request a toast notification.
	TopicToastShow topic.Topic = "toast:show"

	// TopicToastDismissed is published when a toast is dismissed, by the
	// user or by timeout.
	TopicToastDismissed topic.Topic = "toast:dismissed"

	// TopicToastCleared is published when all visible toasts are cleared.
	TopicToastCleared topic.Topic = "toast:cleared"
)

// Severity classifies a toast notification.
type Severity string

// Toast severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ToastShow requests display of a toast notification.
type ToastShow struct {
	// Message is the text to display.
	Message string

	// Severity controls styling and default duration.
	Severity Severity

	// Duration is how long the toast stays visible. Zero means the
	// display component's default for the severity.
	Duration time.Duration

	// Sticky keeps the toast visible until explicitly dismissed.
	Sticky bool
}

// ToastDismissed is published when a toast is dismissed.
type ToastDismissed struct {
	// Message identifies the dismissed toast.
	Message string

	// ByUser is true when the user dismissed it, false on timeout.
	ByUser bool
}
