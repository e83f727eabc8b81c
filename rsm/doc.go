// Package rsm builds and transforms recursive state machines (RSMs).
//
// An RSM is a start nonterminal plus one finite automaton ("box") per
// nonterminal. Box transitions are labelled by terminals (edge labels) or by
// nonterminals (calls into other boxes). It is the automaton-based view of a
// context-free grammar used by tensor-style path query evaluators.
//
//   - Build: extended grammar → RSM, one Thompson ε-NFA per production.
//   - New: RSM from hand-made automata, with the same reference checks.
//   - Get / All / Nonterminals: indexed lookup and stable iteration.
//   - Minimize: new RSM with every box replaced by its minimal DFA.
//   - TensorReady: the deterministic form of every box.
//   - CallGraph / Recursive / CallOrder: which boxes call which, the
//     recursive nonterminals, and a callee-first order when there are none.
//
// RSMs are immutable: transformations return new values and never touch the
// receiver, so an RSM may be shared between goroutines.
//
// Errors:
//
//	ErrNotFound           - lookup of a nonterminal without a box.
//	ErrDanglingReference  - a box calls a nonterminal without a box.
//	ErrMissingStart       - the start nonterminal has no box.
package rsm
