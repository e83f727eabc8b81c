package closure_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/closure"
	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/grammar"
)

// anbn is S → a S b | ε in weak CNF.
func anbn(t testing.TB) *grammar.WeakCNF {
	t.Helper()
	g, err := grammar.NewWeakCNF("S",
		grammar.Binary("S", "A", "S1"),
		grammar.Binary("S1", "S", "B"),
		grammar.Term("A", "a"),
		grammar.Term("B", "b"),
		grammar.Epsilon("S"),
	)
	require.NoError(t, err)

	return g
}

// dyck is S → S S | a S b | ε in weak CNF (balanced brackets).
func dyck(t testing.TB) *grammar.WeakCNF {
	t.Helper()
	g, err := grammar.NewWeakCNF("S",
		grammar.Binary("S", "S", "S"),
		grammar.Binary("S", "A", "S1"),
		grammar.Binary("S1", "S", "B"),
		grammar.Term("A", "a"),
		grammar.Term("B", "b"),
		grammar.Epsilon("S"),
	)
	require.NoError(t, err)

	return g
}

type edge struct{ from, label, to string }

func buildGraph(t testing.TB, edges ...edge) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range edges {
		_, err := g.AddEdge(e.from, e.to, e.label)
		require.NoError(t, err)
	}

	return g
}

// twoCycles is an a-cycle 0→1→2→0 and a b-cycle 0→3→0 sharing vertex 0.
func twoCycles(t testing.TB) *core.Graph {
	return buildGraph(t,
		edge{"0", "a", "1"}, edge{"1", "a", "2"}, edge{"2", "a", "0"},
		edge{"0", "b", "3"}, edge{"3", "b", "0"},
	)
}

// derives reports, CYK-style, which nonterminals derive word under g.
// Spans may be empty, so binary productions are closed per span until stable.
func derives(g *grammar.WeakCNF, word []string) map[grammar.Nonterminal]bool {
	n := len(word)
	table := make([][]map[grammar.Nonterminal]bool, n+1)
	for i := range table {
		table[i] = make([]map[grammar.Nonterminal]bool, n+1)
	}
	for length := 0; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := i + length
			cell := map[grammar.Nonterminal]bool{}
			table[i][j] = cell
			for _, p := range g.Productions {
				switch {
				case p.Kind == grammar.KindEpsilon && length == 0:
					cell[p.Head] = true
				case p.Kind == grammar.KindTerminal && length == 1 && word[i] == p.Terminal:
					cell[p.Head] = true
				}
			}
			for changed := true; changed; {
				changed = false
				for _, p := range g.Productions {
					if p.Kind != grammar.KindBinary || cell[p.Head] {
						continue
					}
					for k := i; k <= j; k++ {
						if table[i][k][p.Left] && table[k][j][p.Right] {
							cell[p.Head] = true
							changed = true
							break
						}
					}
				}
			}
		}
	}

	return table[0][n]
}

// pathTriples enumerates every path of at most maxLen edges and returns the
// triples its word justifies.
func pathTriples(t testing.TB, g *grammar.WeakCNF, graph *core.Graph, maxLen int) map[closure.Triple]bool {
	t.Helper()
	out := map[closure.Triple]bool{}
	var walk func(start, at string, word []string)
	walk = func(start, at string, word []string) {
		for nt := range derives(g, word) {
			out[closure.Triple{From: start, Nonterminal: nt, To: at}] = true
		}
		if len(word) == maxLen {
			return
		}
		next, err := graph.EdgesFrom(at)
		require.NoError(t, err)
		for _, e := range next {
			walk(start, e.To, append(append([]string(nil), word...), e.Label))
		}
	}
	for _, v := range graph.Vertices() {
		walk(v, v, nil)
	}

	return out
}
