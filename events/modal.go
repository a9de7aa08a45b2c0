package events

import "github.com/emberfield/crosstalk/topic"

// Modal event topics.
const (
	// TopicModalOpened is published when a modal dialog opens.
	TopicModalOpened topic.Topic = "modal:opened"

	// TopicModalClosed is published when a modal dialog closes.
	TopicModalClosed topic.Topic = "modal:closed"

	// TopicModalConfirmed is published when the user confirms a modal.
	TopicModalConfirmed topic.Topic = "modal:confirmed"
)

// ModalOpened is published when a modal dialog opens.
type ModalOpened struct {
	// ModalID identifies the modal.
	ModalID string

	// Title is the modal title.
	Title string
}

// ModalClosed is published when a modal dialog closes.
type ModalClosed struct {
	// ModalID identifies the modal.
	ModalID string

	// Confirmed is true when the modal was closed by confirmation
	// rather than cancellation.
	Confirmed bool
}
