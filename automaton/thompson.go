// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"

	"github.com/katalvlaran/cfpq/grammar"
)

// fragment is a sub-automaton with one entry and one exit state.
type fragment struct{ in, out int }

// FromRegex builds an ε-NFA for r by Thompson construction. The result has
// exactly one accepting state; a nil r is treated as grammar.Empty().
//
// Complexity: O(|r|) states and transitions.
func FromRegex(r *grammar.Regex) (*NFA, error) {
	n := &NFA{}
	f, err := n.build(r)
	if err != nil {
		return nil, err
	}
	n.start = f.in
	n.accept[f.out] = true

	return n, nil
}

func (n *NFA) build(r *grammar.Regex) (fragment, error) {
	if r == nil {
		return n.fresh(), nil
	}
	switch r.Op {
	case grammar.OpEmpty:
		return n.fresh(), nil

	case grammar.OpEpsilon:
		f := n.fresh()
		n.eps[f.in] = append(n.eps[f.in], f.out)
		return f, nil

	case grammar.OpSymbol:
		f := n.fresh()
		n.trans[f.in] = map[grammar.Symbol][]int{r.Symbol: {f.out}}
		return f, nil

	case grammar.OpConcat:
		if len(r.Subs) == 0 {
			return n.build(grammar.Eps())
		}
		first, err := n.build(r.Subs[0])
		if err != nil {
			return fragment{}, err
		}
		last := first
		for _, sub := range r.Subs[1:] {
			next, err := n.build(sub)
			if err != nil {
				return fragment{}, err
			}
			n.eps[last.out] = append(n.eps[last.out], next.in)
			last = next
		}
		return fragment{in: first.in, out: last.out}, nil

	case grammar.OpUnion:
		f := n.fresh()
		for _, sub := range r.Subs {
			alt, err := n.build(sub)
			if err != nil {
				return fragment{}, err
			}
			n.eps[f.in] = append(n.eps[f.in], alt.in)
			n.eps[alt.out] = append(n.eps[alt.out], f.out)
		}
		return f, nil

	case grammar.OpStar, grammar.OpPlus, grammar.OpOpt:
		if len(r.Subs) != 1 {
			return fragment{}, fmt.Errorf("%w: %v with %d operands", ErrUnsupportedRegex, r.Op, len(r.Subs))
		}
		body, err := n.build(r.Subs[0])
		if err != nil {
			return fragment{}, err
		}
		f := n.fresh()
		n.eps[f.in] = append(n.eps[f.in], body.in)
		n.eps[body.out] = append(n.eps[body.out], f.out)
		if r.Op != grammar.OpPlus {
			n.eps[f.in] = append(n.eps[f.in], f.out) // skip
		}
		if r.Op != grammar.OpOpt {
			n.eps[body.out] = append(n.eps[body.out], body.in) // repeat
		}
		return f, nil

	default:
		return fragment{}, fmt.Errorf("%w: %d", ErrUnsupportedRegex, r.Op)
	}
}

// fresh allocates an entry and an exit state with no moves between them.
func (n *NFA) fresh() fragment {
	return fragment{in: n.AddState(), out: n.AddState()}
}
