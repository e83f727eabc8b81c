// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/cfpq/core"
)

// TopologicalSort returns the vertices of g so that every edge u→v has u
// before v. Roots are tried in sorted order.
// Returns ErrGraphNil, or ErrCycleDetected (naming a vertex on the cycle).
func TopologicalSort(g *core.Graph) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	state := make(map[string]int, g.VertexCount())
	post := make([]string, 0, g.VertexCount())

	var visit func(id string) error
	visit = func(id string) error {
		state[id] = Gray
		edges, err := g.EdgesFrom(id)
		if err != nil {
			return fmt.Errorf("dfs: edges of %q: %w", id, err)
		}
		for _, e := range edges {
			switch state[e.To] {
			case Gray:
				return fmt.Errorf("%w: through %q", ErrCycleDetected, e.To)
			case White:
				if err := visit(e.To); err != nil {
					return err
				}
			}
		}
		state[id] = Black
		post = append(post, id)

		return nil
	}

	for _, id := range g.Vertices() {
		if state[id] == White {
			if err := visit(id); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}

	return post, nil
}
