// SPDX-License-Identifier: MIT
// File: cnf.go
// Role: weak Chomsky Normal Form grammar and the normalizer boundary.
//
// Contract:
//   - Every Production is exactly one of KindEpsilon, KindTerminal, KindBinary.
//   - FromRules classifies general rules by body arity once; callers downstream
//     switch on Kind and never on body length.
//
// Determinism:
//   - Nonterminals() and Terminals() are sorted.

package grammar

import (
	"fmt"
	"strings"
)

// ProductionKind tags the shape of a weak-CNF production.
type ProductionKind uint8

const (
	// KindEpsilon is A → ε.
	KindEpsilon ProductionKind = iota + 1
	// KindTerminal is A → a.
	KindTerminal
	// KindBinary is A → B C.
	KindBinary
)

// String implements fmt.Stringer.
func (k ProductionKind) String() string {
	switch k {
	case KindEpsilon:
		return "epsilon"
	case KindTerminal:
		return "terminal"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("ProductionKind(%d)", uint8(k))
	}
}

// Production is a weak-CNF production. Only the fields relevant to Kind are
// meaningful: Terminal for KindTerminal, Left and Right for KindBinary.
type Production struct {
	Kind     ProductionKind
	Head     Nonterminal
	Terminal string
	Left     Nonterminal
	Right    Nonterminal
}

// Epsilon returns head → ε.
func Epsilon(head Nonterminal) Production {
	return Production{Kind: KindEpsilon, Head: head}
}

// Term returns head → label.
func Term(head Nonterminal, label string) Production {
	return Production{Kind: KindTerminal, Head: head, Terminal: label}
}

// Binary returns head → left right.
func Binary(head, left, right Nonterminal) Production {
	return Production{Kind: KindBinary, Head: head, Left: left, Right: right}
}

// Validate reports ErrMalformedProduction if p is not a well-formed weak-CNF production.
func (p Production) Validate() error {
	if p.Head == "" {
		return fmt.Errorf("%w: empty head", ErrMalformedProduction)
	}
	switch p.Kind {
	case KindEpsilon:
		return nil
	case KindTerminal:
		if p.Terminal == "" {
			return fmt.Errorf("%w: %s has an empty terminal", ErrMalformedProduction, p.Head)
		}

		return nil
	case KindBinary:
		if p.Left == "" || p.Right == "" {
			return fmt.Errorf("%w: %s has an empty body nonterminal", ErrMalformedProduction, p.Head)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s has unknown kind %s", ErrMalformedProduction, p.Head, p.Kind)
	}
}

// String renders the production as "S -> A B", "A -> "a"" or "S -> ε".
func (p Production) String() string {
	switch p.Kind {
	case KindEpsilon:
		return string(p.Head) + " -> ε"
	case KindTerminal:
		return string(p.Head) + " -> " + T(p.Terminal).String()
	case KindBinary:
		return string(p.Head) + " -> " + string(p.Left) + " " + string(p.Right)
	default:
		return string(p.Head) + " -> ?"
	}
}

// WeakCNF is a grammar in weak Chomsky Normal Form.
type WeakCNF struct {
	Start       Nonterminal
	Productions []Production
}

// NewWeakCNF validates productions and returns the grammar.
func NewWeakCNF(start Nonterminal, productions ...Production) (*WeakCNF, error) {
	g := &WeakCNF{Start: start, Productions: productions}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate checks the start symbol and every production.
func (g *WeakCNF) Validate() error {
	if g.Start == "" {
		return fmt.Errorf("%w: start nonterminal", ErrEmptyName)
	}
	for i, p := range g.Productions {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("production %d: %w", i, err)
		}
	}

	return nil
}

// Nonterminals returns every nonterminal appearing in the grammar (start,
// heads and binary bodies), sorted.
func (g *WeakCNF) Nonterminals() []Nonterminal {
	set := map[Nonterminal]struct{}{}
	if g.Start != "" {
		set[g.Start] = struct{}{}
	}
	for _, p := range g.Productions {
		set[p.Head] = struct{}{}
		if p.Kind == KindBinary {
			set[p.Left] = struct{}{}
			set[p.Right] = struct{}{}
		}
	}

	return sortedNonterminals(set)
}

// Terminals returns the distinct terminal labels, sorted.
func (g *WeakCNF) Terminals() []string {
	set := map[string]struct{}{}
	for _, p := range g.Productions {
		if p.Kind == KindTerminal {
			set[p.Terminal] = struct{}{}
		}
	}

	return sortedStrings(set)
}

// String renders one production per line in declaration order.
func (g *WeakCNF) String() string {
	var sb strings.Builder
	for _, p := range g.Productions {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Rule is a general production head → body, as produced by a grammar normalizer.
type Rule struct {
	Head Nonterminal
	Body []Symbol
}

// FromRules classifies rules into weak-CNF productions:
//
//	len(Body)==0                      → Epsilon
//	len(Body)==1, terminal            → Term
//	len(Body)==2, both nonterminals   → Binary
//
// Anything else means the normalizer contract was violated and is reported as
// ErrMalformedProduction.
func FromRules(start Nonterminal, rules []Rule) (*WeakCNF, error) {
	prods := make([]Production, 0, len(rules))
	for i, r := range rules {
		p, err := classify(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		prods = append(prods, p)
	}

	return NewWeakCNF(start, prods...)
}

func classify(r Rule) (Production, error) {
	switch len(r.Body) {
	case 0:
		return Epsilon(r.Head), nil
	case 1:
		if !r.Body[0].IsTerminal() {
			return Production{}, fmt.Errorf("%w: %s -> %s is a unit production", ErrMalformedProduction, r.Head, r.Body[0])
		}

		return Term(r.Head, r.Body[0].Name), nil
	case 2:
		if !r.Body[0].IsNonterminal() || !r.Body[1].IsNonterminal() {
			return Production{}, fmt.Errorf("%w: %s has a binary body with a terminal", ErrMalformedProduction, r.Head)
		}

		return Binary(r.Head, r.Body[0].Nonterminal(), r.Body[1].Nonterminal()), nil
	default:
		return Production{}, fmt.Errorf("%w: %s has %d body symbols", ErrMalformedProduction, r.Head, len(r.Body))
	}
}
