// SPDX-License-Identifier: MIT

package grammar

import (
	"errors"
	"sort"
)

// Sentinel errors for grammar construction and validation.
var (
	// ErrMalformedProduction indicates a production outside weak CNF.
	ErrMalformedProduction = errors.New("grammar: malformed production")

	// ErrUnresolvedNonterminal indicates a reference to a nonterminal without a production.
	ErrUnresolvedNonterminal = errors.New("grammar: unresolved nonterminal")

	// ErrMissingStart indicates that the start nonterminal has no production.
	ErrMissingStart = errors.New("grammar: start nonterminal has no production")

	// ErrEmptyName indicates an empty terminal or nonterminal name.
	ErrEmptyName = errors.New("grammar: empty symbol name")
)

// Nonterminal names a grammar variable.
type Nonterminal string

// SymbolKind tells terminals from nonterminals.
type SymbolKind uint8

const (
	// TerminalKind marks an edge label.
	TerminalKind SymbolKind = iota + 1
	// NonterminalKind marks a grammar variable.
	NonterminalKind
)

// String implements fmt.Stringer.
func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonterminalKind:
		return "nonterminal"
	default:
		return "invalid"
	}
}

// Symbol is a single grammar symbol. Two symbols are equal iff both Name and
// Kind are equal, so a terminal "S" and a nonterminal "S" never collide.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// T returns the terminal symbol for an edge label.
func T(label string) Symbol { return Symbol{Name: label, Kind: TerminalKind} }

// N returns the nonterminal symbol with the given name.
func N(name Nonterminal) Symbol { return Symbol{Name: string(name), Kind: NonterminalKind} }

// IsTerminal reports whether s is a terminal.
func (s Symbol) IsTerminal() bool { return s.Kind == TerminalKind }

// IsNonterminal reports whether s is a nonterminal.
func (s Symbol) IsNonterminal() bool { return s.Kind == NonterminalKind }

// Nonterminal returns s.Name as a Nonterminal. Meaningful only when IsNonterminal.
func (s Symbol) Nonterminal() Nonterminal { return Nonterminal(s.Name) }

// String renders terminals quoted and nonterminals bare: "a" vs S.
func (s Symbol) String() string {
	if s.IsTerminal() {
		return `"` + s.Name + `"`
	}

	return s.Name
}

// Less orders symbols by kind (terminals first) and then by name.
func (s Symbol) Less(o Symbol) bool {
	if s.Kind != o.Kind {
		return s.Kind < o.Kind
	}

	return s.Name < o.Name
}

// SortSymbols sorts syms in place by Less.
func SortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Less(syms[j]) })
}

func sortedNonterminals(set map[Nonterminal]struct{}) []Nonterminal {
	out := make([]Nonterminal, 0, len(set))
	for nt := range set {
		out = append(out, nt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}
