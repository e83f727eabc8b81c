// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cfpq/grammar"
)

// DFA is a partial deterministic finite automaton: every (state, symbol)
// has at most one successor and a missing one rejects.
type DFA struct {
	start  int
	accept []bool
	trans  []map[grammar.Symbol]int
}

// NewDFA returns a DFA with states 0..n-1 (n ≥ 1), start state 0, no
// transitions and no accepting states.
func NewDFA(n int) (*DFA, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewDFA(%d): %w", n, ErrStateOutOfRange)
	}

	return &DFA{accept: make([]bool, n), trans: make([]map[grammar.Symbol]int, n)}, nil
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int { return len(d.accept) }

// Start returns the start state.
func (d *DFA) Start() int { return d.start }

// SetStart makes s the start state.
func (d *DFA) SetStart(s int) error {
	if err := d.check(s); err != nil {
		return err
	}
	d.start = s

	return nil
}

// SetAccepting marks s as accepting (or not).
func (d *DFA) SetAccepting(s int, accepting bool) error {
	if err := d.check(s); err != nil {
		return err
	}
	d.accept[s] = accepting

	return nil
}

// IsAccepting reports whether s is accepting. Out-of-range states are not.
func (d *DFA) IsAccepting(s int) bool {
	return s >= 0 && s < len(d.accept) && d.accept[s]
}

// SetTransition sets from -sym-> to, replacing any previous successor.
func (d *DFA) SetTransition(from int, sym grammar.Symbol, to int) error {
	if err := d.check(from); err != nil {
		return err
	}
	if err := d.check(to); err != nil {
		return err
	}
	if d.trans[from] == nil {
		d.trans[from] = make(map[grammar.Symbol]int)
	}
	d.trans[from][sym] = to

	return nil
}

// Next returns the successor of s on sym.
func (d *DFA) Next(s int, sym grammar.Symbol) (int, bool) {
	if s < 0 || s >= len(d.trans) {
		return 0, false
	}
	t, ok := d.trans[s][sym]

	return t, ok
}

// Alphabet returns every symbol labelling a transition, sorted.
func (d *DFA) Alphabet() []grammar.Symbol {
	seen := map[grammar.Symbol]struct{}{}
	for _, m := range d.trans {
		for sym := range m {
			seen[sym] = struct{}{}
		}
	}

	return sortedSymbols(seen)
}

// NumTransitions returns the number of defined transitions.
func (d *DFA) NumTransitions() int {
	total := 0
	for _, m := range d.trans {
		total += len(m)
	}

	return total
}

// Accepts reports whether d accepts word.
func (d *DFA) Accepts(word []grammar.Symbol) bool {
	s := d.start
	for _, sym := range word {
		t, ok := d.trans[s][sym]
		if !ok {
			return false
		}
		s = t
	}

	return d.accept[s]
}

// ToNFA returns d as an ε-free NFA with the same states.
func (d *DFA) ToNFA() *NFA {
	n := &NFA{
		start:  d.start,
		accept: append([]bool(nil), d.accept...),
		trans:  make([]map[grammar.Symbol][]int, len(d.trans)),
		eps:    make([][]int, len(d.trans)),
	}
	for s, m := range d.trans {
		if len(m) == 0 {
			continue
		}
		n.trans[s] = make(map[grammar.Symbol][]int, len(m))
		for sym, t := range m {
			n.trans[s][sym] = []int{t}
		}
	}

	return n
}

// String lists the start state, accepting states and transitions in
// state/symbol order, one per line.
func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start %d\n", d.start)
	for s, ok := range d.accept {
		if ok {
			fmt.Fprintf(&sb, "accept %d\n", s)
		}
	}
	alphabet := d.Alphabet()
	for s := range d.trans {
		for _, sym := range alphabet {
			if t, ok := d.trans[s][sym]; ok {
				fmt.Fprintf(&sb, "%d -%s-> %d\n", s, sym, t)
			}
		}
	}

	return sb.String()
}

func (d *DFA) check(s int) error {
	if s < 0 || s >= len(d.accept) {
		return fmt.Errorf("state %d of %d: %w", s, len(d.accept), ErrStateOutOfRange)
	}

	return nil
}
