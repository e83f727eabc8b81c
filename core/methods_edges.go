// File: methods_edges.go
// Role: Edge lifecycle & labeled queries.
//
// Determinism:
//   - Edges() and EdgesFrom() return edges in insertion order (Edge.ID sequence).
//   - Labels() returns distinct labels sorted lexicographically.
//
// Concurrency:
//   - Edges, adjacency and label counts are protected by muEdgeAdj.
//   - Lock order is always muVert → muEdgeAdj.

package core

import (
	"fmt"
	"sort"
	"sync/atomic"
)

const edgeIDPrefix = "e"

// AddEdge creates a new directed edge from→to carrying label and returns its
// unique Edge.ID. Missing endpoints are added implicitly.
//
// Returns ErrEmptyVertexID, ErrEmptyLabel, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(1).
func (g *Graph) AddEdge(from, to, label string) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if label == "" {
		return "", ErrEmptyLabel
	}
	// 2) Loop constraint
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	// 3) Ensure both endpoints exist (idempotent)
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// 4) Multi-edge existence check
	if !g.allowMulti {
		if inner, ok := g.adjacencyList[from][to]; ok && len(inner) > 0 {
			return "", ErrMultiEdgeNotAllowed
		}
	}

	// 5) Generate a new atomic Edge.ID and store the edge
	seq := atomic.AddUint64(&g.nextEdgeID, 1)
	eid := fmt.Sprintf("%s%d", edgeIDPrefix, seq)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Label: label, seq: seq}

	g.ensureAdjMap(from, to)
	g.adjacencyList[from][to][eid] = struct{}{}
	g.labels[label]++

	return eid, nil
}

// RemoveEdge deletes the edge with the given ID.
// Returns ErrEdgeNotFound if no such edge exists.
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	g.dropEdge(eid, e)

	return nil
}

// HasEdge reports true if at least one edge from 'from' to 'to' exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adjacencyList[from][to]) > 0
}

// HasLabeledEdge reports whether an edge from→to carrying label exists.
// Complexity: O(k), k = number of parallel edges from→to.
func (g *Graph) HasLabeledEdge(from, to, label string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for eid := range g.adjacencyList[from][to] {
		if g.edges[eid].Label == label {
			return true
		}
	}

	return false
}

// Edges returns all edges in insertion order.
// Complexity: O(E·logE)
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortBySeq(out)

	return out
}

// EdgesFrom returns the outgoing edges of id in insertion order.
// Returns ErrEmptyVertexID or ErrVertexNotFound for invalid ids.
// Complexity: O(d·log d), d = out-degree.
func (g *Graph) EdgesFrom(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var out []*Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid := range edgeSet {
			out = append(out, g.edges[eid])
		}
	}
	sortBySeq(out)

	return out, nil
}

// Labels returns the distinct edge labels present in the graph, sorted.
// Complexity: O(L·logL)
func (g *Graph) Labels() []string {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]string, 0, len(g.labels))
	for l := range g.labels {
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}

// EdgeCount returns total number of edges. O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Clone returns a deep copy of the Graph: configuration, vertices, edges and
// adjacency. Edge IDs are preserved and new edges continue the ID sequence.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := NewGraph()
	clone.allowMulti = g.allowMulti
	clone.allowLoops = g.allowLoops
	clone.nextEdgeID = atomic.LoadUint64(&g.nextEdgeID)
	for id, v := range g.vertices {
		clone.vertices[id] = &Vertex{ID: v.ID, Metadata: v.Metadata}
		clone.ensureAdjID(id)
	}
	for eid, e := range g.edges {
		ne := *e
		clone.edges[eid] = &ne
		clone.ensureAdjMap(e.From, e.To)
		clone.adjacencyList[e.From][e.To][eid] = struct{}{}
		clone.labels[e.Label]++
	}

	return clone
}

// ensureAdjMap ensures adjacencyList[from][to] initialized. Caller holds muEdgeAdj.
func (g *Graph) ensureAdjMap(from, to string) {
	g.ensureAdjID(from)
	if g.adjacencyList[from][to] == nil {
		g.adjacencyList[from][to] = make(map[string]struct{})
	}
}

// dropEdge removes e from the catalog, adjacency and label counts. Caller holds muEdgeAdj.
func (g *Graph) dropEdge(eid string, e *Edge) {
	delete(g.edges, eid)
	if m := g.adjacencyList[e.From][e.To]; m != nil {
		delete(m, eid)
		if len(m) == 0 {
			delete(g.adjacencyList[e.From], e.To)
		}
	}
	if g.labels[e.Label]--; g.labels[e.Label] == 0 {
		delete(g.labels, e.Label)
	}
}

func sortBySeq(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })
}
