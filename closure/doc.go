// Package closure answers context-free path queries with the Boolean matrix
// closure algorithm.
//
// Given a grammar in weak Chomsky Normal Form and a labeled multigraph,
// Compute returns every triple (u, A, v) such that some path u ⇝ v spells a
// word derivable from nonterminal A.
//
// Algorithm:
//
//  1. Partition productions by shape: A → ε, A → a, A → B C.
//  2. Index vertices 0..n-1 in ascending ID order.
//  3. Allocate one n×n Boolean matrix per nonterminal.
//  4. Seed M[A] with the adjacency of label a for every A → a.
//  5. OR the identity into M[A] for every A → ε.
//  6. Repeat full passes of M[C] |= M[A]·M[B] over all C → A B until a pass
//     leaves every matrix unchanged.
//  7. Emit (vertex(i), A, vertex(j)) for every set cell of every M[A].
//
// Matrices only ever gain cells and are bounded by n², so step 6 reaches the
// least fixed point after at most |N|·n² growing passes. A pass limit derived
// from that bound (WithMaxPasses overrides it) turns a broken invariant into
// ErrNoConvergence instead of a hang.
//
// With WithWorkers(k>1) the products of one pass are computed concurrently
// from the matrices as they were at the start of the pass and ORed into
// their heads afterwards; the fixed point, and so the result, is the same.
//
// Every call is traced with OpenTelemetry (span "closure.Compute") and
// recorded in Prometheus metrics (cfpq_closure_*).
//
// Errors:
//
//	ErrNilGrammar       - grammar is nil.
//	ErrNilGraph         - graph is nil.
//	ErrMalformedGrammar - a production is not A→ε, A→a or A→BC.
//	ErrNoConvergence    - pass limit reached before the fixed point.
//	ErrOptionViolation  - an invalid Option was supplied.
package closure
