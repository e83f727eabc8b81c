// SPDX-License-Identifier: MIT

package automaton

import "github.com/katalvlaran/cfpq/grammar"

// Intersect returns the product DFA accepting L(a) ∩ L(b). Only reachable
// state pairs are built, breadth-first over the shared alphabet.
func Intersect(a, b *DFA) (*DFA, error) {
	if a == nil || b == nil {
		return nil, ErrNilAutomaton
	}
	alphabet := sharedAlphabet(a, b)

	type pairState struct{ p, q int }
	index := map[pairState]int{}
	var pairs []pairState
	d := &DFA{}
	add := func(ps pairState) int {
		if id, ok := index[ps]; ok {
			return id
		}
		id := len(pairs)
		index[ps] = id
		pairs = append(pairs, ps)
		d.accept = append(d.accept, a.accept[ps.p] && b.accept[ps.q])
		d.trans = append(d.trans, nil)

		return id
	}

	d.start = add(pairState{a.start, b.start})
	for cur := 0; cur < len(pairs); cur++ {
		ps := pairs[cur]
		for _, sym := range alphabet {
			p, okA := a.trans[ps.p][sym]
			q, okB := b.trans[ps.q][sym]
			if !okA || !okB {
				continue
			}
			to := add(pairState{p, q})
			if d.trans[cur] == nil {
				d.trans[cur] = make(map[grammar.Symbol]int)
			}
			d.trans[cur][sym] = to
		}
	}

	return d, nil
}

// Equivalent reports whether a and b accept the same language by comparing
// their canonical minimal forms.
func Equivalent(a, b *DFA) (bool, error) {
	ma, err := Minimize(a)
	if err != nil {
		return false, err
	}
	mb, err := Minimize(b)
	if err != nil {
		return false, err
	}

	return ma.String() == mb.String(), nil
}

// IsEmpty reports whether d accepts no word.
func (d *DFA) IsEmpty() bool {
	return !d.trim()[d.start]
}

func sharedAlphabet(a, b *DFA) []grammar.Symbol {
	inB := map[grammar.Symbol]struct{}{}
	for _, sym := range b.Alphabet() {
		inB[sym] = struct{}{}
	}
	var out []grammar.Symbol
	for _, sym := range a.Alphabet() {
		if _, ok := inB[sym]; ok {
			out = append(out, sym)
		}
	}

	return out
}
