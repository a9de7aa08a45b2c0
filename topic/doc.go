// Package topic provides topic naming and wildcard pattern matching for the
// crosstalk event bus.
//
// Topics are colon-separated strings where the first segment conventionally
// names the channel that emitted the event:
//
//	panel:collapse        - a panel was collapsed
//	toast:show            - a toast notification was requested
//	tree:node:selected    - a tree view node was selected
//
// # Wildcard Patterns
//
// Subscription patterns may contain wildcards:
//
//	*                - as an entire pattern, matches every topic
//	panel:*          - matches panel:collapse, panel:expand (one segment)
//	tree:**          - matches tree:node:selected, tree:cleared (any depth)
//	*:selected       - matches tree:selected, list:selected
//
// The Matcher indexes patterns in a segment trie so that matching an emitted
// topic against all registered patterns costs O(segments) rather than
// O(patterns).
package topic
