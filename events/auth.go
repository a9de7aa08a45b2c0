package events

import "github.com/emberfield/crosstalk/topic"

// Auth event topics.
const (
	// TopicLoginSuccess is published after a successful login.
	TopicLoginSuccess topic.Topic = "login:success"

	// TopicLoginFailed is published after a failed login attempt.
	TopicLoginFailed topic.Topic = "login:failed"

	// TopicLogout is published when the user logs out.
	TopicLogout topic.Topic = "logout"

	// TopicSessionExpired is published when the session expires.
	TopicSessionExpired topic.Topic = "session:expired"
)

// LoginSuccess is published after a successful login.
type LoginSuccess struct {
	// UserID identifies the authenticated user.
	UserID string

	// DisplayName is the user's display name.
	DisplayName string
}

// LoginFailed is published after a failed login attempt.
type LoginFailed struct {
	// Reason describes why the login failed.
	Reason string

	// Attempts is the number of consecutive failures.
	Attempts int
}
