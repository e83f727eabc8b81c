// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/core"
)

// tarjan holds the state of one strongly connected components run.
type tarjan struct {
	g       *core.Graph
	counter int
	index   map[string]int
	low     map[string]int
	onStack map[string]bool
	stack   []string
	comps   [][]string
}

// Components returns the strongly connected components of g. Each component
// is sorted; components come sinks first (reverse topological order of the
// condensation). Returns ErrGraphNil for a nil graph.
func Components(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.VertexCount()
	t := &tarjan{
		g:       g,
		index:   make(map[string]int, n),
		low:     make(map[string]int, n),
		onStack: make(map[string]bool, n),
	}
	for _, id := range g.Vertices() {
		if _, seen := t.index[id]; !seen {
			if err := t.connect(id); err != nil {
				return nil, err
			}
		}
	}

	return t.comps, nil
}

func (t *tarjan) connect(id string) error {
	t.index[id] = t.counter
	t.low[id] = t.counter
	t.counter++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	edges, err := t.g.EdgesFrom(id)
	if err != nil {
		return fmt.Errorf("dfs: edges of %q: %w", id, err)
	}
	for _, e := range edges {
		if _, seen := t.index[e.To]; !seen {
			if err := t.connect(e.To); err != nil {
				return err
			}
			t.low[id] = min(t.low[id], t.low[e.To])
		} else if t.onStack[e.To] {
			t.low[id] = min(t.low[id], t.index[e.To])
		}
	}

	if t.low[id] != t.index[id] {
		return nil
	}
	var comp []string
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		comp = append(comp, top)
		if top == id {
			break
		}
	}
	sort.Strings(comp)
	t.comps = append(t.comps, comp)

	return nil
}
