// SPDX-License-Identifier: MIT

package automaton

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/cfpq/grammar"
)

// Sentinel errors for automaton construction.
var (
	// ErrNilAutomaton is returned when a nil *NFA or *DFA is passed.
	ErrNilAutomaton = errors.New("automaton: automaton is nil")

	// ErrStateOutOfRange indicates a state index outside 0..n-1.
	ErrStateOutOfRange = errors.New("automaton: state out of range")

	// ErrUnsupportedRegex indicates a regex operator FromRegex cannot translate.
	ErrUnsupportedRegex = errors.New("automaton: unsupported regex operator")
)

// NFA is a nondeterministic finite automaton with ε-moves and one start state.
type NFA struct {
	start  int
	accept []bool
	trans  []map[grammar.Symbol][]int
	eps    [][]int
}

// NewNFA returns an NFA with a single non-accepting start state 0.
func NewNFA() *NFA {
	n := &NFA{}
	n.AddState()

	return n
}

// AddState appends a fresh non-accepting state and returns its index.
func (n *NFA) AddState() int {
	n.accept = append(n.accept, false)
	n.trans = append(n.trans, nil)
	n.eps = append(n.eps, nil)

	return len(n.accept) - 1
}

// NumStates returns the number of states.
func (n *NFA) NumStates() int { return len(n.accept) }

// Start returns the start state.
func (n *NFA) Start() int { return n.start }

// SetStart makes s the start state.
func (n *NFA) SetStart(s int) error {
	if err := n.check(s); err != nil {
		return err
	}
	n.start = s

	return nil
}

// SetAccepting marks s as accepting (or not).
func (n *NFA) SetAccepting(s int, accepting bool) error {
	if err := n.check(s); err != nil {
		return err
	}
	n.accept[s] = accepting

	return nil
}

// IsAccepting reports whether s is accepting. Out-of-range states are not.
func (n *NFA) IsAccepting(s int) bool {
	return s >= 0 && s < len(n.accept) && n.accept[s]
}

// AddTransition adds from -sym-> to. Duplicates are ignored.
func (n *NFA) AddTransition(from int, sym grammar.Symbol, to int) error {
	if err := n.check(from); err != nil {
		return err
	}
	if err := n.check(to); err != nil {
		return err
	}
	if n.trans[from] == nil {
		n.trans[from] = make(map[grammar.Symbol][]int)
	}
	for _, t := range n.trans[from][sym] {
		if t == to {
			return nil
		}
	}
	n.trans[from][sym] = append(n.trans[from][sym], to)

	return nil
}

// AddEpsilon adds from -ε-> to. Duplicates are ignored.
func (n *NFA) AddEpsilon(from, to int) error {
	if err := n.check(from); err != nil {
		return err
	}
	if err := n.check(to); err != nil {
		return err
	}
	for _, t := range n.eps[from] {
		if t == to {
			return nil
		}
	}
	n.eps[from] = append(n.eps[from], to)

	return nil
}

// Next returns the states reachable from s by one sym-move, sorted.
// ε-moves are not followed.
func (n *NFA) Next(s int, sym grammar.Symbol) []int {
	if s < 0 || s >= len(n.trans) {
		return nil
	}
	out := append([]int(nil), n.trans[s][sym]...)
	sort.Ints(out)

	return out
}

// Alphabet returns every symbol labelling a transition, sorted by Symbol.Less.
func (n *NFA) Alphabet() []grammar.Symbol {
	seen := map[grammar.Symbol]struct{}{}
	for _, m := range n.trans {
		for sym := range m {
			seen[sym] = struct{}{}
		}
	}

	return sortedSymbols(seen)
}

// NumTransitions returns the number of symbol transitions plus ε-moves.
func (n *NFA) NumTransitions() int {
	total := 0
	for s := range n.trans {
		for _, ts := range n.trans[s] {
			total += len(ts)
		}
		total += len(n.eps[s])
	}

	return total
}

// EpsilonClosure returns every state reachable from states through ε-moves
// alone, the states themselves included, sorted. Out-of-range states are ignored.
func (n *NFA) EpsilonClosure(states ...int) []int {
	seen := make([]bool, len(n.accept))
	stack := make([]int, 0, len(states))
	for _, s := range states {
		if s >= 0 && s < len(seen) && !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.eps[s] {
			if !seen[t] {
				seen[t] = true
				stack = append(stack, t)
			}
		}
	}

	out := make([]int, 0, len(seen))
	for s, ok := range seen {
		if ok {
			out = append(out, s)
		}
	}

	return out
}

// Accepts reports whether n accepts word.
func (n *NFA) Accepts(word []grammar.Symbol) bool {
	cur := n.EpsilonClosure(n.start)
	for _, sym := range word {
		var next []int
		for _, s := range cur {
			next = append(next, n.trans[s][sym]...)
		}
		if len(next) == 0 {
			return false
		}
		cur = n.EpsilonClosure(next...)
	}
	for _, s := range cur {
		if n.accept[s] {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of n.
func (n *NFA) Clone() *NFA {
	c := &NFA{
		start:  n.start,
		accept: append([]bool(nil), n.accept...),
		trans:  make([]map[grammar.Symbol][]int, len(n.trans)),
		eps:    make([][]int, len(n.eps)),
	}
	for s := range n.trans {
		if n.trans[s] != nil {
			c.trans[s] = make(map[grammar.Symbol][]int, len(n.trans[s]))
			for sym, ts := range n.trans[s] {
				c.trans[s][sym] = append([]int(nil), ts...)
			}
		}
		c.eps[s] = append([]int(nil), n.eps[s]...)
	}

	return c
}

func (n *NFA) check(s int) error {
	if s < 0 || s >= len(n.accept) {
		return fmt.Errorf("state %d of %d: %w", s, len(n.accept), ErrStateOutOfRange)
	}

	return nil
}

func sortedSymbols(set map[grammar.Symbol]struct{}) []grammar.Symbol {
	out := make([]grammar.Symbol, 0, len(set))
	for sym := range set {
		out = append(out, sym)
	}
	grammar.SortSymbols(out)

	return out
}
