package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/grammar"
)

var (
	a = grammar.Sym(grammar.T("a"))
	b = grammar.Sym(grammar.T("b"))
)

func TestECFG_Validate(t *testing.T) {
	e := grammar.NewECFG("S").
		Add("S", grammar.Concat(a, grammar.Sym(grammar.N("S")), b)).
		Add("S", grammar.Eps())
	require.NoError(t, e.Validate())
	assert.Equal(t, []grammar.Nonterminal{"S"}, e.Nonterminals())
	assert.Equal(t, []string{"a", "b"}, e.Terminals())
	assert.Equal(t, grammar.OpUnion, e.Productions["S"].Op, "alternatives merge into a union")
}

func TestECFG_ValidateErrors(t *testing.T) {
	unresolved := grammar.NewECFG("S").Add("S", grammar.Star(grammar.Sym(grammar.N("X"))))
	assert.ErrorIs(t, unresolved.Validate(), grammar.ErrUnresolvedNonterminal)

	noStart := grammar.NewECFG("S").Add("A", a)
	assert.ErrorIs(t, noStart.Validate(), grammar.ErrMissingStart)

	emptyStart := grammar.NewECFG("")
	assert.ErrorIs(t, emptyStart.Validate(), grammar.ErrEmptyName)

	emptyLabel := grammar.NewECFG("S").Add("S", grammar.Sym(grammar.T("")))
	assert.ErrorIs(t, emptyLabel.Validate(), grammar.ErrEmptyName)
}

func TestRegex_ConstructorsAndString(t *testing.T) {
	assert.Equal(t, grammar.OpEpsilon, grammar.Concat().Op)
	assert.Equal(t, grammar.OpEmpty, grammar.Union().Op)
	assert.Same(t, a, grammar.Concat(a))
	assert.Same(t, b, grammar.Union(b))

	r := grammar.Concat(grammar.Star(a), grammar.Union(b, grammar.Eps()), grammar.Plus(grammar.Opt(a)))
	assert.Equal(t, `("a"* ("b" | ε) "a"?+)`, r.String())
	assert.Equal(t, "∅", grammar.Empty().String())
}

func TestRegex_Symbols(t *testing.T) {
	r := grammar.Concat(b, grammar.Sym(grammar.N("S")), a, b)
	assert.Equal(t, []grammar.Symbol{grammar.T("a"), grammar.T("b"), grammar.N("S")}, r.Symbols())
	assert.Equal(t, []grammar.Nonterminal{"S"}, r.Nonterminals())

	w := grammar.Word(grammar.T("x"), grammar.T("y"))
	assert.Equal(t, grammar.OpConcat, w.Op)
	assert.Len(t, w.Subs, 2)
}
