// Package dfs implements depth-first analyses of a directed core.Graph.
//
//   - TopologicalSort: a linear order of a DAG in which every edge points
//     forward, or ErrCycleDetected.
//   - Components: the strongly connected components (Tarjan), each sorted,
//     listed in reverse topological order of the condensation.
//
// Both visit vertices and out-edges in sorted / insertion order, so results
// are deterministic. Edge labels are ignored; parallel edges count once.
//
// Complexity: O(V + E) time, O(V) memory.
//
// rsm uses both on the call graph of its boxes to find recursive
// nonterminals and a callee-first order for non-recursive machines.
package dfs
