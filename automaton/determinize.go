// SPDX-License-Identifier: MIT

package automaton

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/cfpq/grammar"
)

// Determinize returns a DFA accepting the language of n by subset
// construction over ε-closures. Only reachable subsets become states, and the
// empty subset is never materialized (its transitions are simply missing).
//
// Determinism: subsets are discovered breadth-first with symbols in
// Alphabet order, so equal inputs give identically numbered DFAs.
//
// Complexity: O(2^|n|) states in the worst case, typically far fewer.
func Determinize(n *NFA) (*DFA, error) {
	if n == nil {
		return nil, ErrNilAutomaton
	}
	alphabet := n.Alphabet()

	d := &DFA{}
	index := map[string]int{}
	var subsets [][]int
	add := func(set []int) int {
		key := setKey(set)
		if id, ok := index[key]; ok {
			return id
		}
		id := len(subsets)
		index[key] = id
		subsets = append(subsets, set)
		accepting := false
		for _, s := range set {
			if n.accept[s] {
				accepting = true
				break
			}
		}
		d.accept = append(d.accept, accepting)
		d.trans = append(d.trans, nil)

		return id
	}

	d.start = add(n.EpsilonClosure(n.start))
	for cur := 0; cur < len(subsets); cur++ {
		for _, sym := range alphabet {
			var moved []int
			for _, s := range subsets[cur] {
				moved = append(moved, n.trans[s][sym]...)
			}
			if len(moved) == 0 {
				continue
			}
			to := add(n.EpsilonClosure(moved...))
			if d.trans[cur] == nil {
				d.trans[cur] = make(map[grammar.Symbol]int)
			}
			d.trans[cur][sym] = to
		}
	}

	return d, nil
}

// setKey encodes a sorted state set as "1,4,7".
func setKey(set []int) string {
	var sb strings.Builder
	for i, s := range set {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(s))
	}

	return sb.String()
}
