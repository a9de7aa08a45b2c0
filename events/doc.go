// Package events defines strongly-typed event payloads for the crosstalk bus.
//
// Each event type has a corresponding topic constant and payload struct.
// Events are grouped by the UI surface that emits them:
//
//   - Toast events: notification display and dismissal
//   - Panel events: collapse, expand, resize
//   - Tree events: node selection, expansion, lazy loading
//   - Modal events: open, close, confirm
//   - Auth events: login, logout, session expiry
//   - Form events: submission, validation
//   - Config events: reload lifecycle
//
// # Usage
//
// Events are typically created with crosstalk.NewEvent and published
// through a bus:
//
//	import (
//	    "github.com/emberfield/crosstalk"
//	    "github.com/emberfield/crosstalk/events"
//	)
//
//	evt := crosstalk.NewEvent(events.TopicToastShow,
//	    events.ToastShow{Message: "Saved", Severity: events.SeveritySuccess},
//	    "editor",
//	)
//	bus.Publish(ctx, evt)
//
// # Topic Naming Convention
//
// Topics follow a hierarchical colon notation:
//
//	<surface>:<action>
//
// Examples:
//   - toast:show
//   - panel:collapse
//   - tree:node:selected
//   - login:success
//
// # Wildcard Subscriptions
//
// Subscribers can use wildcards to match multiple topics:
//   - "*" matches exactly one segment: "toast:*" matches "toast:show"
//   - "**" matches zero or more segments: "tree:**" matches "tree:node:selected"
package events
