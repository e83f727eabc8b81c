// SPDX-License-Identifier: MIT

package grammar

import (
	"strings"
)

// Op is the operator of a Regex node.
type Op uint8

const (
	// OpEmpty matches nothing.
	OpEmpty Op = iota
	// OpEpsilon matches the empty word.
	OpEpsilon
	// OpSymbol matches a single symbol.
	OpSymbol
	// OpConcat matches its operands in sequence.
	OpConcat
	// OpUnion matches any one of its operands.
	OpUnion
	// OpStar matches zero or more repetitions of its operand.
	OpStar
	// OpPlus matches one or more repetitions of its operand.
	OpPlus
	// OpOpt matches zero or one occurrence of its operand.
	OpOpt
)

// Regex is a regular expression over grammar symbols. Build it with the
// constructors below; a nil *Regex behaves like Empty().
type Regex struct {
	Op     Op
	Symbol Symbol   // OpSymbol only
	Subs   []*Regex // operands of Concat/Union (n) and Star/Plus/Opt (1)
}

// Empty returns the regex matching no word.
func Empty() *Regex { return &Regex{Op: OpEmpty} }

// Eps returns the regex matching only the empty word.
func Eps() *Regex { return &Regex{Op: OpEpsilon} }

// Sym returns the regex matching exactly s.
func Sym(s Symbol) *Regex { return &Regex{Op: OpSymbol, Symbol: s} }

// Concat returns r1 r2 … rn. With no operands it is Eps().
func Concat(rs ...*Regex) *Regex {
	switch len(rs) {
	case 0:
		return Eps()
	case 1:
		return rs[0]
	}

	return &Regex{Op: OpConcat, Subs: rs}
}

// Union returns r1 | r2 | … | rn. With no operands it is Empty().
func Union(rs ...*Regex) *Regex {
	switch len(rs) {
	case 0:
		return Empty()
	case 1:
		return rs[0]
	}

	return &Regex{Op: OpUnion, Subs: rs}
}

// Star returns r*.
func Star(r *Regex) *Regex { return &Regex{Op: OpStar, Subs: []*Regex{r}} }

// Plus returns r+.
func Plus(r *Regex) *Regex { return &Regex{Op: OpPlus, Subs: []*Regex{r}} }

// Opt returns r?.
func Opt(r *Regex) *Regex { return &Regex{Op: OpOpt, Subs: []*Regex{r}} }

// Word returns the concatenation of the given symbols.
func Word(syms ...Symbol) *Regex {
	rs := make([]*Regex, len(syms))
	for i, s := range syms {
		rs[i] = Sym(s)
	}

	return Concat(rs...)
}

// Walk calls fn for r and every descendant in pre-order.
func (r *Regex) Walk(fn func(*Regex)) {
	if r == nil {
		return
	}
	fn(r)
	for _, s := range r.Subs {
		s.Walk(fn)
	}
}

// Symbols returns the distinct symbols occurring in r, sorted by Symbol.Less.
func (r *Regex) Symbols() []Symbol {
	seen := map[Symbol]struct{}{}
	r.Walk(func(n *Regex) {
		if n.Op == OpSymbol {
			seen[n.Symbol] = struct{}{}
		}
	})
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	SortSymbols(out)

	return out
}

// Nonterminals returns the distinct nonterminals referenced by r, sorted.
func (r *Regex) Nonterminals() []Nonterminal {
	set := map[Nonterminal]struct{}{}
	r.Walk(func(n *Regex) {
		if n.Op == OpSymbol && n.Symbol.IsNonterminal() {
			set[n.Symbol.Nonterminal()] = struct{}{}
		}
	})

	return sortedNonterminals(set)
}

// String renders r with explicit parentheses around compound operands.
func (r *Regex) String() string {
	var sb strings.Builder
	r.write(&sb)

	return sb.String()
}

func (r *Regex) write(sb *strings.Builder) {
	if r == nil {
		sb.WriteString("∅")
		return
	}
	switch r.Op {
	case OpEmpty:
		sb.WriteString("∅")
	case OpEpsilon:
		sb.WriteString("ε")
	case OpSymbol:
		sb.WriteString(r.Symbol.String())
	case OpConcat, OpUnion:
		sep := " "
		if r.Op == OpUnion {
			sep = " | "
		}
		sb.WriteByte('(')
		for i, s := range r.Subs {
			if i > 0 {
				sb.WriteString(sep)
			}
			s.write(sb)
		}
		sb.WriteByte(')')
	case OpStar, OpPlus, OpOpt:
		r.Subs[0].write(sb)
		sb.WriteString([...]string{OpStar: "*", OpPlus: "+", OpOpt: "?"}[r.Op])
	}
}
