// SPDX-License-Identifier: MIT

package grammar

import "fmt"

// ECFG is an extended context-free grammar: one regular expression over
// terminals and nonterminals per nonterminal.
type ECFG struct {
	Start       Nonterminal
	Productions map[Nonterminal]*Regex
}

// NewECFG returns an empty extended grammar with the given start symbol.
func NewECFG(start Nonterminal) *ECFG {
	return &ECFG{Start: start, Productions: make(map[Nonterminal]*Regex)}
}

// Add sets the right-hand side of head. Alternatives for the same head are
// merged with Union.
func (e *ECFG) Add(head Nonterminal, body *Regex) *ECFG {
	if prev, ok := e.Productions[head]; ok {
		body = Union(prev, body)
	}
	e.Productions[head] = body

	return e
}

// Nonterminals returns the heads of e, sorted.
func (e *ECFG) Nonterminals() []Nonterminal {
	set := make(map[Nonterminal]struct{}, len(e.Productions))
	for nt := range e.Productions {
		set[nt] = struct{}{}
	}

	return sortedNonterminals(set)
}

// Terminals returns every terminal label referenced by e, sorted.
func (e *ECFG) Terminals() []string {
	set := map[string]struct{}{}
	for _, body := range e.Productions {
		body.Walk(func(n *Regex) {
			if n.Op == OpSymbol && n.Symbol.IsTerminal() {
				set[n.Symbol.Name] = struct{}{}
			}
		})
	}

	return sortedStrings(set)
}

// Validate checks that the start symbol has a production and that every
// nonterminal referenced by a right-hand side has one too.
func (e *ECFG) Validate() error {
	if e.Start == "" {
		return fmt.Errorf("%w: start nonterminal", ErrEmptyName)
	}
	if _, ok := e.Productions[e.Start]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingStart, e.Start)
	}
	for _, head := range e.Nonterminals() {
		if head == "" {
			return fmt.Errorf("%w: production head", ErrEmptyName)
		}
		body := e.Productions[head]
		for _, s := range body.Symbols() {
			if s.Name == "" {
				return fmt.Errorf("%w: in production of %s", ErrEmptyName, head)
			}
			if !s.IsNonterminal() {
				continue
			}
			if _, ok := e.Productions[s.Nonterminal()]; !ok {
				return fmt.Errorf("%w: %s referenced by %s", ErrUnresolvedNonterminal, s.Name, head)
			}
		}
	}

	return nil
}
