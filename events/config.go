package events

import "github.com/emberfield/crosstalk/topic"

// Config event topics.
const (
	// TopicConfigReloaded is published when the configuration file is
	// reloaded successfully.
	TopicConfigReloaded topic.Topic = "config:reloaded"

	// TopicConfigError is published when a configuration reload fails.
	TopicConfigError topic.Topic = "config:error"
)

// ConfigReloaded is published when the configuration file is reloaded.
type ConfigReloaded struct {
	// Path is the configuration file path.
	Path string
}

// ConfigError is published when a configuration reload fails.
type ConfigError struct {
	// Path is the configuration file path.
	Path string

	// Err is the reload error message.
	Err string
}
