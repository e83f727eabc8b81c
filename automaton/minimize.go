// SPDX-License-Identifier: MIT
// File: minimize.go
// Role: DFA minimization and canonical numbering.
//
// Implementation:
//   - Stage 1: Trim. Keep states reachable from the start that can also
//     reach an accepting state; transitions into dropped states vanish.
//   - Stage 2: Moore refinement. Start from {accepting, rejecting} and split
//     blocks by (block, successor block per symbol) until stable. A missing
//     transition counts as block -1.
//   - Stage 3: Canonical numbering. BFS over blocks from the start block,
//     symbols in Alphabet order.
//
// The trimmed partial DFA with merged equivalent states is the unique minimal
// partial DFA, so Minimize is idempotent and canonical.

package automaton

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/cfpq/grammar"
)

// Minimize returns the minimal partial DFA accepting the language of d,
// numbered canonically. An empty language yields one rejecting state.
//
// Complexity: O(k·|Q|·|Σ|) for k refinement rounds (k ≤ |Q|).
func Minimize(d *DFA) (*DFA, error) {
	if d == nil {
		return nil, ErrNilAutomaton
	}
	alphabet := d.Alphabet()
	live := d.trim()
	if !live[d.start] {
		return NewDFA(1)
	}

	// Stage 2: Moore refinement over live states.
	block := make([]int, len(d.accept))
	for s := range block {
		switch {
		case !live[s]:
			block[s] = -1
		case d.accept[s]:
			block[s] = 1
		default:
			block[s] = 0
		}
	}
	count := countBlocks(block)
	for {
		next, n := refine(d, alphabet, block, live)
		block = next
		if n == count {
			break
		}
		count = n
	}

	// Stage 3: canonical BFS numbering of blocks.
	canon := map[int]int{block[d.start]: 0}
	rep := []int{d.start} // representative state per canonical block
	for i := 0; i < len(rep); i++ {
		for _, sym := range alphabet {
			t, ok := d.trans[rep[i]][sym]
			if !ok || !live[t] {
				continue
			}
			if _, seen := canon[block[t]]; !seen {
				canon[block[t]] = len(rep)
				rep = append(rep, t)
			}
		}
	}

	m, err := NewDFA(len(rep))
	if err != nil {
		return nil, err
	}
	for c, s := range rep {
		m.accept[c] = d.accept[s]
		for _, sym := range alphabet {
			if t, ok := d.trans[s][sym]; ok && live[t] {
				if m.trans[c] == nil {
					m.trans[c] = make(map[grammar.Symbol]int)
				}
				m.trans[c][sym] = canon[block[t]]
			}
		}
	}

	return m, nil
}

// trim marks states reachable from the start that can reach acceptance.
func (d *DFA) trim() []bool {
	n := len(d.accept)
	reach := make([]bool, n)
	reach[d.start] = true
	queue := []int{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range d.trans[s] {
			if !reach[t] {
				reach[t] = true
				queue = append(queue, t)
			}
		}
	}

	rev := make([][]int, n)
	for s, m := range d.trans {
		for _, t := range m {
			rev[t] = append(rev[t], s)
		}
	}
	coreach := make([]bool, n)
	queue = queue[:0]
	for s, ok := range d.accept {
		if ok {
			coreach[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range rev[s] {
			if !coreach[p] {
				coreach[p] = true
				queue = append(queue, p)
			}
		}
	}

	live := make([]bool, n)
	for s := range live {
		live[s] = reach[s] && coreach[s]
	}

	return live
}

// refine splits blocks by successor signature and returns the new blocks
// and their count.
func refine(d *DFA, alphabet []grammar.Symbol, block []int, live []bool) ([]int, int) {
	ids := map[string]int{}
	next := make([]int, len(block))
	var sb strings.Builder
	for s := range block {
		if !live[s] {
			next[s] = -1
			continue
		}
		sb.Reset()
		sb.WriteString(strconv.Itoa(block[s]))
		for _, sym := range alphabet {
			sb.WriteByte('|')
			t, ok := d.trans[s][sym]
			if !ok || !live[t] {
				sb.WriteString("-1")
				continue
			}
			sb.WriteString(strconv.Itoa(block[t]))
		}
		key := sb.String()
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
		}
		next[s] = id
	}

	return next, len(ids)
}

func countBlocks(block []int) int {
	seen := map[int]struct{}{}
	for _, b := range block {
		if b >= 0 {
			seen[b] = struct{}{}
		}
	}

	return len(seen)
}
