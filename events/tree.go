package events

import "github.com/emberfield/crosstalk/topic"

// Tree event topics.
const (
	// TopicTreeNodeSelected is published when a tree node is selected.
	TopicTreeNodeSelected topic.Topic = "tree:node:selected"

	// TopicTreeNodeExpanded is published when a tree node is expanded.
	TopicTreeNodeExpanded topic.Topic = "tree:node:expanded"

	// TopicTreeNodeCollapsed is published when a tree node is collapsed.
	TopicTreeNodeCollapsed topic.Topic = "tree:node:collapsed"

	// TopicTreeLoadRequested is published when an expanded node needs its
	// children loaded lazily.
	TopicTreeLoadRequested topic.Topic = "tree:load:requested"

	// TopicTreeLoadCompleted is published when lazy loading finishes.
	TopicTreeLoadCompleted topic.Topic = "tree:load:completed"
)

// TreeNode is a reference to a node within a tree component.
type TreeNode struct {
	// TreeID identifies the tree component.
	TreeID string

	// NodeID identifies the node within the tree.
	NodeID string

	// Path is the slash-joined path of node labels from the root.
	Path string
}

// TreeNodeSelected is published when a tree node is selected.
type TreeNodeSelected struct {
	// Node is the selected node.
	Node TreeNode

	// Multi is true when the selection was added to an existing one.
	Multi bool
}

// TreeNodeExpanded is published when a tree node is expanded or collapsed.
type TreeNodeExpanded struct {
	// Node is the toggled node.
	Node TreeNode

	// Expanded is the new state.
	Expanded bool
}

// TreeLoadCompleted is published when lazy loading finishes.
type TreeLoadCompleted struct {
	// Node is the node whose children were loaded.
	Node TreeNode

	// ChildCount is the number of children loaded.
	ChildCount int

	// Err is the load error message, empty on success.
	Err string
}
