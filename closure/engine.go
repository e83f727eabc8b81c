// SPDX-License-Identifier: MIT
// File: engine.go
// Role: Compute entry point, grammar partitioning, seeding and the fixed-point loop.
//
// Ownership:
//   - The vertex index and every matrix belong to one call and are dropped
//     when it returns. Grammar and graph are only read.
//
// Failure:
//   - No partial result: any error returns a nil *Result.

package closure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/cfpq/bfs"
	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/matrix"
)

// pair is the body B C of a binary production, as interned indices.
type pair struct{ left, right int }

// headRules groups every binary body of one head so that the head is
// written by exactly one update per pass.
type headRules struct {
	head  int
	pairs []pair
}

// engine is the per-query state. Nonterminals are interned to dense ints so
// the hot loop indexes slices instead of hashing names.
type engine struct {
	nts     []grammar.Nonterminal
	ntIndex map[grammar.Nonterminal]int

	eps  []int            // heads of A → ε
	term map[string][]int // label → heads of A → label
	bin  []headRules      // heads of A → B C, in nonterminal order

	adj *matrix.LabeledAdjacency
	m   []*matrix.Bool

	keep map[string]bool // source filter; nil keeps every triple
}

// Compute returns every (u, A, v) such that a path u ⇝ v spells a word
// derivable from nonterminal A of g.
//
// Implementation:
//   - Stage 1: Validate inputs and options; partition productions.
//   - Stage 2: Index vertices and allocate one n×n matrix per nonterminal.
//   - Stage 3: Seed from terminal and epsilon productions.
//   - Stage 4: Run passes of M[C] |= M[A]·M[B] until one changes nothing.
//   - Stage 5: Materialize the triple set.
//
// With WithSources only triples starting at a source are returned.
//
// Returns ErrNilGrammar, ErrNilGraph, ErrOptionViolation, ErrMalformedGrammar,
// ErrUnknownSource, ErrNoConvergence, or the context error if ctx is
// cancelled between passes.
//
// Complexity: O(P·|B|·n²·⌈n/64⌉) per pass, P ≤ |N|·n²+1 passes.
func Compute(ctx context.Context, g *grammar.WeakCNF, graph *core.Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrNilGrammar
	}
	if graph == nil {
		return nil, ErrNilGraph
	}

	ctx, span := tracer.Start(ctx, "closure.Compute",
		trace.WithAttributes(
			attribute.Int("vertex_count", graph.VertexCount()),
			attribute.Int("edge_count", graph.EdgeCount()),
			attribute.Int("production_count", len(g.Productions)),
			attribute.Int("workers", o.Workers),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := compute(ctx, g, graph, &o)
	elapsed := time.Since(start)
	queryDuration.Observe(elapsed.Seconds())

	if err != nil {
		queryTotal.WithLabelValues(resultLabel(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.Logger.Debug("closure failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
		)

		return nil, err
	}

	queryTotal.WithLabelValues(resultOK).Inc()
	passCount.Observe(float64(res.Passes))
	tripleCount.Observe(float64(res.Len()))
	span.SetAttributes(
		attribute.Int("passes", res.Passes),
		attribute.Int("triple_count", res.Len()),
	)
	o.Logger.Debug("closure completed",
		slog.Int("passes", res.Passes),
		slog.Int("triples", res.Len()),
		slog.Int("nodes", res.Nodes),
		slog.Duration("elapsed", elapsed),
	)

	return res, nil
}

// ComputeStart runs Compute and returns only the pairs derived from the
// grammar's start nonterminal, sorted.
func ComputeStart(ctx context.Context, g *grammar.WeakCNF, graph *core.Graph, opts ...Option) ([]Pair, error) {
	res, err := Compute(ctx, g, graph, opts...)
	if err != nil {
		return nil, err
	}

	return res.Pairs(g.Start), nil
}

func compute(ctx context.Context, g *grammar.WeakCNF, graph *core.Graph, o *Options) (*Result, error) {
	e, err := partition(g)
	if err != nil {
		return nil, err
	}
	if len(o.Sources) > 0 {
		if graph, err = reachableSubgraph(ctx, graph, o.Sources); err != nil {
			return nil, err
		}
		e.keep = make(map[string]bool, len(o.Sources))
		for _, id := range o.Sources {
			e.keep[id] = true
		}
	}
	if e.adj, err = matrix.NewLabeledAdjacency(graph); err != nil {
		return nil, err
	}
	if err = e.seed(); err != nil {
		return nil, err
	}

	maxPasses := o.MaxPasses
	if maxPasses == 0 {
		maxPasses = passBound(len(e.nts), e.adj.VertexCount())
	}
	passes, err := e.iterate(ctx, o, maxPasses)
	if err != nil {
		return nil, err
	}

	return e.materialize(passes)
}

// partition interns nonterminals and buckets productions by Kind.
func partition(g *grammar.WeakCNF) (*engine, error) {
	e := &engine{
		nts:  g.Nonterminals(),
		term: make(map[string][]int),
	}
	e.ntIndex = make(map[grammar.Nonterminal]int, len(e.nts))
	for i, nt := range e.nts {
		e.ntIndex[nt] = i
	}

	byHead := make([][]pair, len(e.nts))
	epsSeen := make([]bool, len(e.nts))
	for i, p := range g.Productions {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: production %d: %w", ErrMalformedGrammar, i, err)
		}
		h := e.ntIndex[p.Head]
		switch p.Kind {
		case grammar.KindEpsilon:
			if !epsSeen[h] {
				epsSeen[h] = true
				e.eps = append(e.eps, h)
			}
		case grammar.KindTerminal:
			e.term[p.Terminal] = append(e.term[p.Terminal], h)
		case grammar.KindBinary:
			byHead[h] = append(byHead[h], pair{left: e.ntIndex[p.Left], right: e.ntIndex[p.Right]})
		}
	}
	for h, pairs := range byHead {
		if len(pairs) > 0 {
			e.bin = append(e.bin, headRules{head: h, pairs: pairs})
		}
	}

	return e, nil
}

// seed allocates the matrices and applies terminal and epsilon productions.
func (e *engine) seed() error {
	n := e.adj.VertexCount()
	e.m = make([]*matrix.Bool, len(e.nts))
	for i := range e.m {
		m, err := matrix.NewBool(n, n)
		if err != nil {
			return err
		}
		e.m[i] = m
	}

	// Terminal seeding: M[A] |= adjacency(label) for A → label.
	for label, heads := range e.term {
		adj := e.adj.Label(label)
		if adj == nil {
			continue
		}
		for _, h := range heads {
			if _, err := e.m[h].Or(adj); err != nil {
				return err
			}
		}
	}

	// Epsilon seeding: M[A] |= I for A → ε.
	if len(e.eps) > 0 {
		id, err := matrix.Identity(n)
		if err != nil {
			return err
		}
		for _, h := range e.eps {
			if _, err := e.m[h].Or(id); err != nil {
				return err
			}
		}
	}

	return nil
}

// iterate runs closure passes until a full pass changes no matrix and
// returns the number of passes, the final unchanged one included.
func (e *engine) iterate(ctx context.Context, o *Options, maxPasses int) (int, error) {
	for pass := 1; ; pass++ {
		if pass > maxPasses {
			return 0, fmt.Errorf("%w: %d passes", ErrNoConvergence, maxPasses)
		}
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("closure: cancelled before pass %d: %w", pass, err)
		}

		var (
			changed int
			err     error
		)
		if o.Workers > 1 && len(e.bin) > 1 {
			changed, err = e.parallelPass(ctx, o.Workers)
		} else {
			changed, err = e.sequentialPass()
		}
		if err != nil {
			return 0, err
		}

		o.Logger.Debug("closure pass",
			slog.Int("pass", pass),
			slog.Int("changed_heads", changed),
		)
		if o.OnPass != nil {
			o.OnPass(e.stats(pass, changed))
		}
		if changed == 0 {
			return pass, nil
		}
	}
}

// sequentialPass updates heads in place, so later products in the same pass
// already see earlier growth.
func (e *engine) sequentialPass() (int, error) {
	changed := 0
	for _, hr := range e.bin {
		dst := e.m[hr.head]
		before := dst.Nnz()
		for _, p := range hr.pairs {
			if _, err := dst.MulOr(e.m[p.left], e.m[p.right]); err != nil {
				return 0, err
			}
		}
		if dst.Nnz() != before {
			changed++
		}
	}

	return changed, nil
}

func (e *engine) stats(pass, changed int) PassStats {
	nnz := make(map[grammar.Nonterminal]int, len(e.nts))
	for i, nt := range e.nts {
		nnz[nt] = e.m[i].Nnz()
	}

	return PassStats{Pass: pass, Changed: changed, Nnz: nnz}
}

// materialize turns every set cell into a triple.
func (e *engine) materialize(passes int) (*Result, error) {
	var (
		triples []Triple
		err     error
	)
	for k, nt := range e.nts {
		e.m[k].Each(func(i, j int) {
			if err != nil {
				return
			}
			var from, to string
			if from, err = e.adj.VertexAt(i); err != nil {
				return
			}
			if e.keep != nil && !e.keep[from] {
				return
			}
			if to, err = e.adj.VertexAt(j); err != nil {
				return
			}
			triples = append(triples, Triple{From: from, Nonterminal: nt, To: to})
		})
		if err != nil {
			return nil, err
		}
	}

	res := NewResult(triples)
	res.Passes = passes
	res.Nodes = e.adj.VertexCount()
	res.Nonterminals = e.nts

	return res, nil
}

// reachableSubgraph returns the subgraph of graph induced by the vertices
// reachable from sources. A derivation only ever reads the edges of its own
// path, so triples starting at a source are the same in both graphs.
func reachableSubgraph(ctx context.Context, graph *core.Graph, sources []string) (*core.Graph, error) {
	reach, err := bfs.Reachable(graph, sources, bfs.WithContext(ctx))
	if errors.Is(err, bfs.ErrSourceNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownSource, err)
	}
	if err != nil {
		return nil, err
	}

	sub := core.NewGraph()
	for _, id := range reach {
		if err := sub.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for _, id := range reach {
		edges, err := graph.EdgesFrom(id)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			if _, err := sub.AddEdge(edge.From, edge.To, edge.Label); err != nil {
				return nil, err
			}
		}
	}

	return sub, nil
}

// passBound is |N|·n²+1 saturated at math.MaxInt.
func passBound(nts, n int) int {
	if nts == 0 || n == 0 {
		return 1
	}
	cells := uint64(n) * uint64(n)
	if cells/uint64(n) != uint64(n) || cells >= math.MaxInt/uint64(nts) {
		return math.MaxInt
	}

	return int(cells)*nts + 1
}
