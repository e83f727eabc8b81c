// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Walk runs breadth-first search on g from every source at once.
// Returns ErrGraphNil, ErrNoSources, ErrSourceNotFound, ErrOptionViolation,
// the context error on cancellation, or an OnVisit error.
func Walk(g *core.Graph, sources []string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	srcs := append([]string(nil), sources...)
	sort.Strings(srcs)
	n := g.VertexCount()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]*core.Edge, n),
		},
	}
	for i, id := range srcs {
		if i > 0 && id == srcs[i-1] {
			continue
		}
		if !g.HasVertex(id) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, id)
		}
		w.enqueue(id, 0, nil)
	}

	return w.res, w.loop()
}

// Reachable returns the sorted IDs of every vertex reachable from sources,
// the sources included.
func Reachable(g *core.Graph, sources []string, opts ...Option) ([]string, error) {
	res, err := Walk(g, sources, opts...)
	if err != nil {
		return nil, err
	}
	out := append([]string(nil), res.Order...)
	sort.Strings(out)

	return out, nil
}

func (w *walker) enqueue(id string, d int, via *core.Edge) {
	w.res.Depth[id] = d
	if via != nil {
		w.res.Parent[id] = via
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if err := w.expand(item); err != nil {
			return err
		}
	}

	return nil
}

// expand enqueues every unseen successor reachable by an allowed edge.
func (w *walker) expand(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	edges, err := w.graph.EdgesFrom(item.id)
	if err != nil {
		return fmt.Errorf("bfs: edges of %q: %w", item.id, err)
	}
	for _, e := range edges {
		if w.opts.Labels != nil {
			if _, ok := w.opts.Labels[e.Label]; !ok {
				continue
			}
		}
		if _, seen := w.res.Depth[e.To]; !seen {
			w.enqueue(e.To, next, e)
		}
	}

	return nil
}
