// SPDX-License-Identifier: MIT
// Package closure_test verifies the Boolean matrix closure engine.
//
// Purpose:
//   - Lock in the a^n b^n chain scenario triple by triple.
//   - Check soundness and completeness against path enumeration on small graphs.
//   - Check monotonicity, idempotence, parallel/sequential agreement and errors.

package closure_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/closure"
	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
)

func TestCompute_AnBnChain(t *testing.T) {
	graph := buildGraph(t,
		edge{"0", "a", "1"}, edge{"1", "a", "2"},
		edge{"2", "b", "3"}, edge{"3", "b", "4"},
	)
	res, err := closure.Compute(context.Background(), anbn(t), graph)
	require.NoError(t, err)

	assert.Equal(t, []closure.Pair{
		{From: "0", To: "0"}, {From: "0", To: "4"},
		{From: "1", To: "1"}, {From: "1", To: "3"},
		{From: "2", To: "2"}, {From: "3", To: "3"}, {From: "4", To: "4"},
	}, res.Pairs("S"))
	assert.True(t, res.Contains("0", "S", "4"))
	assert.True(t, res.Contains("1", "S", "3"))
	assert.False(t, res.Contains("0", "S", "2"))
	assert.False(t, res.Contains("0", "S", "3"))

	assert.Equal(t, []closure.Pair{{From: "0", To: "1"}, {From: "1", To: "2"}}, res.Pairs("A"))
	assert.Equal(t, []closure.Pair{{From: "1", To: "4"}, {From: "2", To: "3"}, {From: "3", To: "4"}}, res.Pairs("S1"))
	assert.Equal(t, 14, res.Len())
	assert.Equal(t, 5, res.Nodes)
	assert.Equal(t, []grammar.Nonterminal{"A", "B", "S", "S1"}, res.Nonterminals)
	assert.Equal(t, []string{"0", "4"}, res.Reachable("0", "S"))
}

func TestCompute_EpsilonOnly(t *testing.T) {
	g, err := grammar.NewWeakCNF("S", grammar.Epsilon("S"))
	require.NoError(t, err)
	graph := buildGraph(t, edge{"x", "a", "y"}, edge{"y", "a", "y"})

	res, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)
	assert.Equal(t, []closure.Triple{
		{From: "x", Nonterminal: "S", To: "x"},
		{From: "y", Nonterminal: "S", To: "y"},
	}, res.Triples())
	assert.Equal(t, 1, res.Passes)
}

func TestCompute_MultiEdgesAreIdempotent(t *testing.T) {
	g, err := grammar.NewWeakCNF("S", grammar.Term("S", "a"))
	require.NoError(t, err)
	graph := buildGraph(t, edge{"0", "a", "1"}, edge{"0", "a", "1"}, edge{"0", "b", "1"})

	res, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)
	assert.Equal(t, []closure.Triple{{From: "0", Nonterminal: "S", To: "1"}}, res.Triples())
}

func TestCompute_EmptyGraph(t *testing.T) {
	res, err := closure.Compute(context.Background(), anbn(t), core.NewGraph())
	require.NoError(t, err)
	assert.Zero(t, res.Len())
	assert.Zero(t, res.Nodes)
	assert.Equal(t, 1, res.Passes)
}

func TestCompute_MatchesPathEnumerationOnDAG(t *testing.T) {
	// Acyclic, so every path is at most four edges long and enumeration is exact.
	graph := buildGraph(t,
		edge{"0", "a", "1"}, edge{"1", "a", "2"}, edge{"1", "b", "2"},
		edge{"2", "b", "3"}, edge{"3", "b", "4"}, edge{"0", "b", "4"},
	)
	for name, g := range map[string]*grammar.WeakCNF{"anbn": anbn(t), "dyck": dyck(t)} {
		t.Run(name, func(t *testing.T) {
			res, err := closure.Compute(context.Background(), g, graph)
			require.NoError(t, err)

			want := pathTriples(t, g, graph, graph.VertexCount()-1)
			got := map[closure.Triple]bool{}
			for _, tr := range res.Triples() {
				got[tr] = true
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestCompute_CompleteOnCycles(t *testing.T) {
	graph := twoCycles(t)
	g := anbn(t)
	res, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)

	for tr := range pathTriples(t, g, graph, 8) {
		assert.True(t, res.Contains(tr.From, tr.Nonterminal, tr.To), "missing %+v", tr)
	}
	// a^3 b^3 from 0: aaa returns to 0, bbb ends at 3.
	assert.True(t, res.Contains("0", "S", "3"))
}

func TestCompute_Monotone(t *testing.T) {
	var history []closure.PassStats
	res, err := closure.Compute(context.Background(), dyck(t), twoCycles(t),
		closure.WithPassObserver(func(s closure.PassStats) { history = append(history, s) }),
	)
	require.NoError(t, err)
	require.Len(t, history, res.Passes)

	for i := 1; i < len(history); i++ {
		assert.Equal(t, i+1, history[i].Pass)
		for nt, n := range history[i-1].Nnz {
			assert.GreaterOrEqual(t, history[i].Nnz[nt], n, "pass %d shrank %s", history[i].Pass, nt)
		}
	}
	last := history[len(history)-1]
	assert.Zero(t, last.Changed, "the final pass changes nothing")
}

func TestCompute_Idempotent(t *testing.T) {
	g, graph := dyck(t), twoCycles(t)
	first, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)
	second, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Passes, second.Passes)
}

func TestCompute_ParallelMatchesSequential(t *testing.T) {
	g, graph := dyck(t), twoCycles(t)
	seq, err := closure.Compute(context.Background(), g, graph)
	require.NoError(t, err)
	for _, w := range []int{2, 4} {
		par, err := closure.Compute(context.Background(), g, graph, closure.WithWorkers(w))
		require.NoError(t, err)
		assert.True(t, seq.Equal(par), "workers=%d", w)
	}
}

func TestCompute_Errors(t *testing.T) {
	ctx := context.Background()
	graph := twoCycles(t)

	_, err := closure.Compute(ctx, nil, graph)
	assert.ErrorIs(t, err, closure.ErrNilGrammar)
	_, err = closure.Compute(ctx, anbn(t), nil)
	assert.ErrorIs(t, err, closure.ErrNilGraph)

	_, err = closure.Compute(ctx, anbn(t), graph, closure.WithWorkers(0))
	assert.ErrorIs(t, err, closure.ErrOptionViolation)
	_, err = closure.Compute(ctx, anbn(t), graph, closure.WithMaxPasses(-1))
	assert.ErrorIs(t, err, closure.ErrOptionViolation)

	bad := &grammar.WeakCNF{Start: "S", Productions: []grammar.Production{
		grammar.Term("A", "a"),
		{Kind: 7, Head: "S"},
	}}
	res, err := closure.Compute(ctx, bad, graph)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, closure.ErrMalformedGrammar)
	assert.ErrorIs(t, err, grammar.ErrMalformedProduction)
}

func TestCompute_NoConvergence(t *testing.T) {
	graph := buildGraph(t,
		edge{"0", "a", "1"}, edge{"1", "a", "2"},
		edge{"2", "b", "3"}, edge{"3", "b", "4"},
	)
	res, err := closure.Compute(context.Background(), anbn(t), graph, closure.WithMaxPasses(1))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, closure.ErrNoConvergence)
}

func TestCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := closure.Compute(ctx, anbn(t), twoCycles(t))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComputeStart(t *testing.T) {
	graph := buildGraph(t, edge{"0", "a", "1"}, edge{"1", "b", "2"})
	pairs, err := closure.ComputeStart(context.Background(), anbn(t), graph)
	require.NoError(t, err)
	assert.Equal(t, []closure.Pair{
		{From: "0", To: "0"}, {From: "0", To: "2"}, {From: "1", To: "1"}, {From: "2", To: "2"},
	}, pairs)
}

func TestNewResult_Dedup(t *testing.T) {
	tr := closure.Triple{From: "b", Nonterminal: "S", To: "a"}
	res := closure.NewResult([]closure.Triple{tr, {From: "a", Nonterminal: "S", To: "b"}, tr})
	assert.Equal(t, 2, res.Len())
	assert.Equal(t, "a", res.Triples()[0].From)
	assert.Empty(t, res.Reachable("z", "S"))
}

func TestCompute_WithSources(t *testing.T) {
	graph := twoCycles(t)
	_, err := graph.AddEdge("7", "8", "a")
	require.NoError(t, err)
	ctx := context.Background()

	full, err := closure.Compute(ctx, dyck(t), graph)
	require.NoError(t, err)
	sub, err := closure.Compute(ctx, dyck(t), graph, closure.WithSources("1", "3"))
	require.NoError(t, err)

	var want []closure.Triple
	for _, tr := range full.Triples() {
		if tr.From == "1" || tr.From == "3" {
			want = append(want, tr)
		}
	}
	assert.Equal(t, want, sub.Triples())
	assert.Equal(t, 4, sub.Nodes, "vertices 7 and 8 are not reachable from the sources")

	_, err = closure.Compute(ctx, dyck(t), graph, closure.WithSources("missing"))
	assert.ErrorIs(t, err, closure.ErrUnknownSource)
	_, err = closure.Compute(ctx, dyck(t), graph, closure.WithSources())
	assert.ErrorIs(t, err, closure.ErrOptionViolation)
}
