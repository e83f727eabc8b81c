// SPDX-License-Identifier: MIT

// Package grammar defines the grammar representations consumed by context-free
// path queries:
//
//   - Symbol: a terminal (edge label) or a nonterminal name.
//   - Production / WeakCNF: a grammar in weak Chomsky Normal Form, where every
//     production is one of A → ε, A → a or A → B C. Production is a tagged
//     variant; the shape is decided once, when the grammar is built, so the
//     closure engine never inspects right-hand-side lengths.
//   - Rule / FromRules: the normalizer boundary. General rules with a body of
//     0, 1 or 2 symbols are classified into productions; any other shape is
//     rejected with ErrMalformedProduction.
//   - Regex / ECFG: an extended grammar whose right-hand sides are regular
//     expressions over terminals and nonterminals (the input of the RSM builder).
//
// Grammar-text parsing is out of scope: grammars are built in Go code.
//
// Errors:
//
//	ErrMalformedProduction   - production shape is not A→ε, A→a or A→BC.
//	ErrUnresolvedNonterminal - a regex references a nonterminal with no production.
//	ErrMissingStart          - the start nonterminal has no production.
//	ErrEmptyName             - a symbol or nonterminal name is empty.
package grammar
