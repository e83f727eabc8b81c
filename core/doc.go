// Package core provides a thread-safe, in-memory, directed, edge-labeled
// multigraph: the graph source consumed by context-free path queries.
//
// The Graph G = (V, E, L) stores:
//
//   - Vertices identified by non-empty string IDs.
//   - Directed edges From→To, each carrying exactly one non-empty Label.
//   - Parallel edges (same endpoints, same or different labels) by default.
//   - Self-loops by default.
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//     to minimize lock contention under concurrency.
//
// Configuration Options (GraphOption):
//
//	– WithoutMultiEdges()
//	    A second AddEdge(from,to,…) between the same endpoints → ErrMultiEdgeNotAllowed.
//
//	– WithoutLoops()
//	    AddEdge(v,v,…) → ErrLoopNotAllowed.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error                                  // O(1)
//	HasVertex(id string) bool                                   // O(1)
//	RemoveVertex(id string) error                               // O(E)
//
//	// Edge lifecycle
//	AddEdge(from, to, label string) (edgeID string, err error)  // O(1)†
//	RemoveEdge(edgeID string) error                             // O(1)
//	HasEdge(from, to string) bool                               // O(1)
//	HasLabeledEdge(from, to, label string) bool                 // O(k), k parallel edges
//
//	// Query
//	Vertices() []string           // O(V·log V), sorted
//	Edges() []*Edge               // O(E·log E), sorted by sequence number
//	EdgesFrom(id string) ([]*Edge, error)
//	Labels() []string             // O(L·log L), distinct labels, sorted
//	VertexCount(), EdgeCount()    // O(1)
//	Clone() *Graph                // O(V+E)
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrEmptyLabel          – zero-length edge label
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
//
// † amortized constant time: atomic ID generation + nested-map insertion.
//
// Queries assume the graph is not mutated while they run; concurrent reads are
// always safe.
package core
