// Package automaton provides the finite automata behind recursive state
// machines: epsilon-NFAs over grammar symbols, deterministic automata and
// the classical constructions between them.
//
//   - FromRegex: Thompson construction, grammar.Regex → *NFA with ε-moves.
//   - (*NFA).EpsilonClosure: states reachable through ε-moves only.
//   - Determinize: subset construction over ε-closures, *NFA → *DFA.
//   - Minimize: trim (reachable and co-reachable states only), Moore
//     partition refinement, canonical BFS numbering.
//   - Intersect / Equivalent: product construction and language equality.
//
// States are dense ints 0..n-1. DFAs are partial: a missing transition
// rejects. Symbols are grammar.Symbol values, so a terminal "S" and a
// nonterminal S label different transitions.
//
// Minimal DFAs are numbered canonically (BFS from the start, symbols in
// grammar.Symbol order), so two DFAs accept the same language iff their
// minimal forms are structurally identical.
//
// Errors:
//
//	ErrNilAutomaton      - nil automaton argument.
//	ErrStateOutOfRange   - state index outside 0..n-1.
//	ErrUnsupportedRegex  - regex node with an unknown operator.
package automaton
