// SPDX-License-Identifier: MIT

package closure

import (
	"sort"

	"github.com/katalvlaran/cfpq/grammar"
)

// Triple states that a path From ⇝ To spells a word derivable from Nonterminal.
type Triple struct {
	From        string              `json:"from"`
	Nonterminal grammar.Nonterminal `json:"nonterminal"`
	To          string              `json:"to"`
}

// Pair is a (From, To) vertex pair.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the read-only triple set of one query plus run diagnostics.
type Result struct {
	triples []Triple // sorted, no duplicates
	set     map[Triple]struct{}

	// Passes is the number of closure passes, the final unchanged one included.
	Passes int
	// Nodes is the number of graph vertices.
	Nodes int
	// Nonterminals lists every nonterminal of the grammar, sorted.
	Nonterminals []grammar.Nonterminal
}

// NewResult builds a Result from triples, dropping duplicates.
// Diagnostics are left zero.
func NewResult(triples []Triple) *Result {
	set := make(map[Triple]struct{}, len(triples))
	uniq := make([]Triple, 0, len(triples))
	for _, t := range triples {
		if _, dup := set[t]; dup {
			continue
		}
		set[t] = struct{}{}
		uniq = append(uniq, t)
	}
	sort.Slice(uniq, func(i, j int) bool { return tripleLess(uniq[i], uniq[j]) })

	return &Result{triples: uniq, set: set}
}

func tripleLess(a, b Triple) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	if a.Nonterminal != b.Nonterminal {
		return a.Nonterminal < b.Nonterminal
	}

	return a.To < b.To
}

// Len returns the number of triples.
func (r *Result) Len() int { return len(r.triples) }

// Contains reports whether (from, nt, to) is in the result.
func (r *Result) Contains(from string, nt grammar.Nonterminal, to string) bool {
	_, ok := r.set[Triple{From: from, Nonterminal: nt, To: to}]
	return ok
}

// Triples returns a copy of all triples sorted by From, Nonterminal, To.
func (r *Result) Triples() []Triple {
	out := make([]Triple, len(r.triples))
	copy(out, r.triples)

	return out
}

// Pairs returns the (From, To) pairs derived from nt, sorted.
func (r *Result) Pairs(nt grammar.Nonterminal) []Pair {
	var out []Pair
	for _, t := range r.triples {
		if t.Nonterminal == nt {
			out = append(out, Pair{From: t.From, To: t.To})
		}
	}

	return out
}

// Reachable returns the vertices reachable from `from` by a path derivable
// from nt, sorted.
func (r *Result) Reachable(from string, nt grammar.Nonterminal) []string {
	lo := sort.Search(len(r.triples), func(i int) bool {
		t := r.triples[i]
		return t.From > from || (t.From == from && t.Nonterminal >= nt)
	})
	var out []string
	for i := lo; i < len(r.triples); i++ {
		t := r.triples[i]
		if t.From != from || t.Nonterminal != nt {
			break
		}
		out = append(out, t.To)
	}

	return out
}

// Equal reports whether r and o hold the same triple set.
func (r *Result) Equal(o *Result) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i := range r.triples {
		if r.triples[i] != o.triples[i] {
			return false
		}
	}

	return true
}
