package rsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/automaton"
	"github.com/katalvlaran/cfpq/dfs"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/rsm"
)

var (
	a = grammar.Sym(grammar.T("a"))
	b = grammar.Sym(grammar.T("b"))
	c = grammar.Sym(grammar.T("c"))
	S = grammar.Sym(grammar.N("S"))
	X = grammar.Sym(grammar.N("X"))
)

// sample is S → a S b | X, X → c* (with a redundant alternative c c*).
func sample() *grammar.ECFG {
	return grammar.NewECFG("S").
		Add("S", grammar.Concat(a, S, b)).
		Add("S", X).
		Add("X", grammar.Union(grammar.Star(c), grammar.Concat(c, grammar.Star(c))))
}

func TestBuild(t *testing.T) {
	m, err := rsm.Build(sample())
	require.NoError(t, err)
	assert.Equal(t, grammar.Nonterminal("S"), m.Start())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []grammar.Nonterminal{"S", "X"}, m.Nonterminals())

	box, err := m.Get("S")
	require.NoError(t, err)
	assert.True(t, box.Accepts([]grammar.Symbol{grammar.T("a"), grammar.N("S"), grammar.T("b")}))
	assert.True(t, box.Accepts([]grammar.Symbol{grammar.N("X")}))
	assert.False(t, box.Accepts([]grammar.Symbol{grammar.T("a"), grammar.T("b")}))
}

func TestBuild_Errors(t *testing.T) {
	unresolved := grammar.NewECFG("S").Add("S", grammar.Concat(a, grammar.Sym(grammar.N("Missing"))))
	_, err := rsm.Build(unresolved)
	assert.ErrorIs(t, err, grammar.ErrUnresolvedNonterminal)

	noStart := grammar.NewECFG("S").Add("X", c)
	_, err = rsm.Build(noStart)
	assert.ErrorIs(t, err, grammar.ErrMissingStart)

	_, err = rsm.Build(nil)
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	m, err := rsm.Build(sample())
	require.NoError(t, err)
	box, err := m.Get("Y")
	assert.Nil(t, box)
	assert.ErrorIs(t, err, rsm.ErrNotFound)
}

func TestAll_StableOrder(t *testing.T) {
	m, err := rsm.Build(sample())
	require.NoError(t, err)

	var seen []grammar.Nonterminal
	for nt, box := range m.All() {
		require.NotNil(t, box)
		seen = append(seen, nt)
	}
	assert.Equal(t, m.Nonterminals(), seen)

	// Early break stops the iteration.
	count := 0
	for range m.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestNew(t *testing.T) {
	box, err := automaton.FromRegex(grammar.Concat(a, X))
	require.NoError(t, err)

	_, err = rsm.New("S", map[grammar.Nonterminal]*automaton.NFA{"S": box})
	assert.ErrorIs(t, err, rsm.ErrDanglingReference)

	_, err = rsm.New("T", map[grammar.Nonterminal]*automaton.NFA{"S": box})
	assert.ErrorIs(t, err, rsm.ErrMissingStart)

	_, err = rsm.New("S", map[grammar.Nonterminal]*automaton.NFA{"S": nil})
	assert.ErrorIs(t, err, automaton.ErrNilAutomaton)

	xBox, err := automaton.FromRegex(c)
	require.NoError(t, err)
	m, err := rsm.New("S", map[grammar.Nonterminal]*automaton.NFA{"S": box, "X": xBox})
	require.NoError(t, err)

	// The RSM holds copies, so later edits to the caller's automaton are invisible.
	require.NoError(t, xBox.AddTransition(xBox.Start(), grammar.T("z"), xBox.Start()))
	got, err := m.Get("X")
	require.NoError(t, err)
	assert.NotEqual(t, xBox.NumTransitions(), got.NumTransitions())
}

func TestMinimize(t *testing.T) {
	src, err := rsm.Build(sample())
	require.NoError(t, err)
	statesBefore := src.NumStates()

	minimal, err := src.Minimize()
	require.NoError(t, err)
	assert.Equal(t, src.Start(), minimal.Start())
	assert.Equal(t, src.Nonterminals(), minimal.Nonterminals())
	assert.Less(t, minimal.NumStates(), statesBefore)
	assert.Equal(t, statesBefore, src.NumStates(), "source RSM is untouched")

	// c* | c c* is c*: one accepting state with a c-loop.
	x, err := minimal.Get("X")
	require.NoError(t, err)
	assert.Equal(t, 1, x.NumStates())

	// Language preserved and minimization idempotent.
	words := [][]grammar.Symbol{
		nil,
		{grammar.T("c"), grammar.T("c")},
		{grammar.T("a"), grammar.N("S"), grammar.T("b")},
		{grammar.N("X")},
		{grammar.T("a"), grammar.T("b")},
	}
	for nt, box := range src.All() {
		mbox, err := minimal.Get(nt)
		require.NoError(t, err)
		for _, w := range words {
			assert.Equal(t, box.Accepts(w), mbox.Accepts(w), "%s on %v", nt, w)
		}
	}
	again, err := minimal.Minimize()
	require.NoError(t, err)
	assert.Equal(t, minimal.NumStates(), again.NumStates())
}

func TestTensorReady(t *testing.T) {
	m, err := rsm.Build(sample())
	require.NoError(t, err)
	dfas, err := m.TensorReady()
	require.NoError(t, err)
	require.Len(t, dfas, 2)

	s := dfas["S"]
	require.NotNil(t, s)
	assert.True(t, s.Accepts([]grammar.Symbol{grammar.T("a"), grammar.N("S"), grammar.T("b")}))
	assert.True(t, s.Accepts([]grammar.Symbol{grammar.N("X")}))
	assert.False(t, s.Accepts(nil))
}

func TestCallGraph(t *testing.T) {
	m, err := rsm.Build(sample())
	require.NoError(t, err)
	cg, err := m.CallGraph()
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "X"}, cg.Vertices())
	assert.True(t, cg.HasEdge("S", "S"))
	assert.True(t, cg.HasEdge("S", "X"))
	assert.False(t, cg.HasEdge("X", "S"))

	rec, err := m.Recursive()
	require.NoError(t, err)
	assert.Equal(t, []grammar.Nonterminal{"S"}, rec)

	_, err = m.CallOrder()
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

func TestCallOrder_NonRecursive(t *testing.T) {
	// S → Y X, Y → X b, X → c: a regular language with nested calls.
	e := grammar.NewECFG("S").
		Add("S", grammar.Concat(grammar.Sym(grammar.N("Y")), X)).
		Add("Y", grammar.Concat(X, b)).
		Add("X", c)
	m, err := rsm.Build(e)
	require.NoError(t, err)

	rec, err := m.Recursive()
	require.NoError(t, err)
	assert.Empty(t, rec)

	order, err := m.CallOrder()
	require.NoError(t, err)
	assert.Equal(t, []grammar.Nonterminal{"X", "Y", "S"}, order)
}

func TestRecursive_MutualRecursion(t *testing.T) {
	e := grammar.NewECFG("S").
		Add("S", grammar.Union(grammar.Concat(a, grammar.Sym(grammar.N("T"))), grammar.Eps())).
		Add("T", grammar.Concat(b, S)).
		Add("X", c)
	m, err := rsm.Build(e)
	require.NoError(t, err)
	rec, err := m.Recursive()
	require.NoError(t, err)
	assert.Equal(t, []grammar.Nonterminal{"S", "T"}, rec)
}
