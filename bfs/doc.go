// Package bfs runs breadth-first search over a labeled core.Graph.
//
// The search starts from one or more source vertices at once and follows
// edges in their insertion order, so the visit order is reproducible.
//
//   - Order: vertices in visit order, sources first (sorted, deduplicated).
//   - Depth: fewest edges from the nearest source.
//   - Parent: the edge through which each non-source vertex was discovered.
//
// PathTo and Word rebuild a shortest path and the label word it spells.
// WithLabels restricts the walk to edges carrying the given labels;
// WithMaxDepth bounds the walk; WithOnVisit may abort it with an error.
//
// closure uses Reachable to cut a graph down to the part reachable from a
// set of query sources before building matrices.
package bfs
