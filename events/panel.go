package events

import "github.com/emberfield/crosstalk/topic"

// Panel event topics.
const (
	// TopicPanelCollapse is published when a panel collapses.
	TopicPanelCollapse topic.Topic = "panel:collapse"

	// TopicPanelExpand is published when a panel expands.
	TopicPanelExpand topic.Topic = "panel:expand"

	// TopicPanelResized is published when a panel is resized.
	TopicPanelResized topic.Topic = "panel:resized"

	// TopicPanelFocused is published when a panel receives focus.
	TopicPanelFocused topic.Topic = "panel:focused"
)

// PanelCollapse is published when a panel collapses or expands.
type PanelCollapse struct {
	// PanelID identifies the panel.
	PanelID string

	// Collapsed is the new collapsed state.
	Collapsed bool
}

// PanelResized is published when a panel is resized.
type PanelResized struct {
	// PanelID identifies the panel.
	PanelID string

	// Width is the new width in pixels.
	Width int

	// Height is the new height in pixels.
	Height int
}

// PanelFocused is published when a panel receives focus.
type PanelFocused struct {
	// PanelID identifies the panel.
	PanelID string

	// Previous identifies the panel that lost focus, if any.
	Previous string
}
