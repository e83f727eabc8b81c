// Package cfpq answers context-free path queries over labeled graphs.
//
// A context-free path query asks, for a grammar G and a directed graph whose
// edges carry terminal labels, which vertex pairs (u, v) are joined by a path
// whose label word is derivable from a nonterminal of G. The module computes
// every such triple (u, A, v) at once with a Boolean-matrix fixpoint and also
// builds the automaton view of a grammar used by tensor-style evaluators.
//
// Packages:
//
//	core/      labeled directed multigraph, thread-safe
//	grammar/   weak CNF grammars, regular expressions, extended grammars
//	matrix/    bitset Boolean matrices and per-label adjacency
//	closure/   the matrix closure engine, results and query fingerprints
//	automaton/ Thompson NFAs, subset construction, minimization, products
//	rsm/       recursive state machines built from extended grammars
//	bfs/, dfs/ graph walks used for source pruning and call-graph analysis
//	store/     BadgerDB cache of closure results
//	config/    YAML configuration for the tooling
//	cmd/cfpq   CLI for configuration and cache maintenance
//
// Quick example (S → a S b | ε over 0 -a-> 1 -b-> 2):
//
//	g, _ := grammar.NewWeakCNF("S",
//		grammar.Binary("S", "A", "S1"), grammar.Binary("S1", "S", "B"),
//		grammar.Term("A", "a"), grammar.Term("B", "b"), grammar.Epsilon("S"))
//	graph := core.NewGraph()
//	graph.AddEdge("0", "1", "a")
//	graph.AddEdge("1", "2", "b")
//	pairs, _ := closure.ComputeStart(ctx, g, graph)
//	// [{0 0} {0 2} {1 1} {2 2}]
package cfpq
