// Package store persists closure results in an embedded BadgerDB.
//
// Results are keyed by the fingerprint of the (grammar, graph) pair that
// produced them (see closure.Fingerprint), so a repeated query with the same
// inputs can be answered without running the fixpoint again.
//
//	s, err := store.Open(store.InMemoryConfig())
//	...
//	res, hit, err := store.Cached(ctx, s, g, graph)
//
// Values are JSON documents holding the sorted triple set and the run
// diagnostics. A Store is safe for concurrent use.
package store
