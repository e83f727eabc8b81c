// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/cfpq/core"
)

// LabeledAdjacency is the per-label Boolean adjacency of a labeled multigraph.
// VertexIndex maps vertex ID → row/col; vertices are indexed in ascending ID
// order, so the index is deterministic for a given vertex set.
// Parallel edges with the same label collapse into one cell (Boolean OR).
type LabeledAdjacency struct {
	VertexIndex   map[string]int   // mapping of vertex ID to index
	vertexByIndex []string         // reverse lookup by index
	byLabel       map[string]*Bool // n×n adjacency per edge label
}

// NewLabeledAdjacency builds the per-label adjacency of g.
// Stage 1 (Validate): ensure g is non-nil.
// Stage 2 (Prepare): index the sorted vertex list.
// Stage 3 (Execute): set one cell per edge in its label's matrix.
// Returns ErrGraphNil for a nil graph.
// Complexity: O(V + E + L·V·⌈V/64⌉).
func NewLabeledAdjacency(g *core.Graph) (*LabeledAdjacency, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	vertices := g.Vertices()
	idx := make(map[string]int, len(vertices))
	for i, id := range vertices {
		idx[id] = i
	}
	n := len(vertices)

	la := &LabeledAdjacency{
		VertexIndex:   idx,
		vertexByIndex: vertices,
		byLabel:       make(map[string]*Bool),
	}
	for _, e := range g.Edges() {
		u, okU := idx[e.From]
		v, okV := idx[e.To]
		if !okU || !okV {
			// the graph changed between Vertices() and Edges()
			return nil, fmt.Errorf("NewLabeledAdjacency: edge %s %s→%s: %w", e.ID, e.From, e.To, ErrUnknownVertex)
		}
		m, ok := la.byLabel[e.Label]
		if !ok {
			var err error
			if m, err = NewBool(n, n); err != nil {
				return nil, err
			}
			la.byLabel[e.Label] = m
		}
		m.set(u, v)
	}

	return la, nil
}

// VertexCount returns the matrix dimension.
func (la *LabeledAdjacency) VertexCount() int { return len(la.vertexByIndex) }

// VertexAt returns the vertex ID stored at index i.
func (la *LabeledAdjacency) VertexAt(i int) (string, error) {
	if i < 0 || i >= len(la.vertexByIndex) {
		return "", fmt.Errorf("VertexAt(%d): %w", i, ErrOutOfRange)
	}

	return la.vertexByIndex[i], nil
}

// Index returns the row/col of vertex id.
func (la *LabeledAdjacency) Index(id string) (int, error) {
	i, ok := la.VertexIndex[id]
	if !ok {
		return 0, fmt.Errorf("Index(%q): %w", id, ErrUnknownVertex)
	}

	return i, nil
}

// Label returns the adjacency matrix of label, or nil if no edge carries it.
// The returned matrix is shared; callers must not mutate it.
func (la *LabeledAdjacency) Label(label string) *Bool { return la.byLabel[label] }

// Labels returns the number of distinct labels with at least one edge.
func (la *LabeledAdjacency) Labels() int { return len(la.byLabel) }
