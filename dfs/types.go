package dfs

import "errors"

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is on the recursion stack.
	Black        // Black: the vertex and all its descendants are done.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrCycleDetected indicates that TopologicalSort met a cycle.
	ErrCycleDetected = errors.New("dfs: cycle detected")
)
