// SPDX-License-Identifier: MIT

package rsm

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/katalvlaran/cfpq/automaton"
	"github.com/katalvlaran/cfpq/core"
	"github.com/katalvlaran/cfpq/dfs"
	"github.com/katalvlaran/cfpq/grammar"
)

// Sentinel errors for RSM construction and lookup.
var (
	// ErrNotFound is returned by Get for a nonterminal without a box.
	ErrNotFound = errors.New("rsm: nonterminal not found")

	// ErrDanglingReference indicates a box transition calling a nonterminal without a box.
	ErrDanglingReference = errors.New("rsm: dangling nonterminal reference")

	// ErrMissingStart indicates that the start nonterminal has no box.
	ErrMissingStart = errors.New("rsm: start nonterminal has no box")
)

// RSM is a recursive state machine.
type RSM struct {
	start grammar.Nonterminal
	boxes map[grammar.Nonterminal]*automaton.NFA
	order []grammar.Nonterminal // sorted keys of boxes
}

// New returns an RSM over copies of boxes.
// Returns ErrMissingStart, automaton.ErrNilAutomaton or ErrDanglingReference.
func New(start grammar.Nonterminal, boxes map[grammar.Nonterminal]*automaton.NFA) (*RSM, error) {
	r := &RSM{start: start, boxes: make(map[grammar.Nonterminal]*automaton.NFA, len(boxes))}
	for nt, box := range boxes {
		if box == nil {
			return nil, fmt.Errorf("box %s: %w", nt, automaton.ErrNilAutomaton)
		}
		r.boxes[nt] = box.Clone()
	}
	if err := r.finish(); err != nil {
		return nil, err
	}

	return r, nil
}

// Build converts every production of e into an ε-NFA by Thompson
// construction and collects them under e.Start.
// Returns grammar.ErrUnresolvedNonterminal (wrapped) if a right-hand side
// references a nonterminal without a production.
func Build(e *grammar.ECFG) (*RSM, error) {
	if e == nil {
		return nil, fmt.Errorf("rsm: nil extended grammar: %w", grammar.ErrMissingStart)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("rsm: build: %w", err)
	}

	r := &RSM{start: e.Start, boxes: make(map[grammar.Nonterminal]*automaton.NFA, len(e.Productions))}
	for nt, body := range e.Productions {
		box, err := automaton.FromRegex(body)
		if err != nil {
			return nil, fmt.Errorf("rsm: build %s: %w", nt, err)
		}
		r.boxes[nt] = box
	}
	if err := r.finish(); err != nil {
		return nil, err
	}

	return r, nil
}

// finish sorts the order and checks the start box and every call target.
func (r *RSM) finish() error {
	r.order = make([]grammar.Nonterminal, 0, len(r.boxes))
	for nt := range r.boxes {
		r.order = append(r.order, nt)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })

	if _, ok := r.boxes[r.start]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingStart, r.start)
	}
	for _, nt := range r.order {
		for _, sym := range r.boxes[nt].Alphabet() {
			if !sym.IsNonterminal() {
				continue
			}
			if _, ok := r.boxes[sym.Nonterminal()]; !ok {
				return fmt.Errorf("%w: %s called from %s", ErrDanglingReference, sym.Name, nt)
			}
		}
	}

	return nil
}

// Start returns the start nonterminal.
func (r *RSM) Start() grammar.Nonterminal { return r.start }

// Len returns the number of boxes.
func (r *RSM) Len() int { return len(r.boxes) }

// Nonterminals returns the nonterminals with a box, sorted.
func (r *RSM) Nonterminals() []grammar.Nonterminal {
	return append([]grammar.Nonterminal(nil), r.order...)
}

// Get returns the box of nt. The automaton is shared; do not mutate it.
// Returns ErrNotFound if nt has no box.
func (r *RSM) Get(nt grammar.Nonterminal) (*automaton.NFA, error) {
	box, ok := r.boxes[nt]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, nt)
	}

	return box, nil
}

// All iterates over (nonterminal, box) in sorted nonterminal order.
func (r *RSM) All() iter.Seq2[grammar.Nonterminal, *automaton.NFA] {
	return func(yield func(grammar.Nonterminal, *automaton.NFA) bool) {
		for _, nt := range r.order {
			if !yield(nt, r.boxes[nt]) {
				return
			}
		}
	}
}

// NumStates returns the total number of states over all boxes.
func (r *RSM) NumStates() int {
	total := 0
	for _, box := range r.boxes {
		total += box.NumStates()
	}

	return total
}

// Minimize returns a new RSM with the same start whose boxes are the minimal
// DFAs of r's boxes, as ε-free NFAs. r is not modified.
func (r *RSM) Minimize() (*RSM, error) {
	out := &RSM{start: r.start, boxes: make(map[grammar.Nonterminal]*automaton.NFA, len(r.boxes))}
	for _, nt := range r.order {
		d, err := automaton.Determinize(r.boxes[nt])
		if err != nil {
			return nil, fmt.Errorf("rsm: minimize %s: %w", nt, err)
		}
		m, err := automaton.Minimize(d)
		if err != nil {
			return nil, fmt.Errorf("rsm: minimize %s: %w", nt, err)
		}
		out.boxes[nt] = m.ToNFA()
	}
	out.order = append([]grammar.Nonterminal(nil), r.order...)

	return out, nil
}

// TensorReady returns the deterministic form of every box, the input of a
// product-automaton evaluator.
func (r *RSM) TensorReady() (map[grammar.Nonterminal]*automaton.DFA, error) {
	out := make(map[grammar.Nonterminal]*automaton.DFA, len(r.boxes))
	for _, nt := range r.order {
		d, err := automaton.Determinize(r.boxes[nt])
		if err != nil {
			return nil, fmt.Errorf("rsm: determinize %s: %w", nt, err)
		}
		out[nt] = d
	}

	return out, nil
}

// callLabel labels every edge of the call graph.
const callLabel = "call"

// CallGraph returns a graph with one vertex per nonterminal and an edge
// A → B whenever the box of A has a transition labeled by B.
func (r *RSM) CallGraph() (*core.Graph, error) {
	g := core.NewGraph(core.WithoutMultiEdges())
	for _, nt := range r.order {
		if err := g.AddVertex(string(nt)); err != nil {
			return nil, fmt.Errorf("rsm: call graph vertex %q: %w", nt, err)
		}
	}
	for _, nt := range r.order {
		for _, sym := range r.boxes[nt].Alphabet() {
			if !sym.IsNonterminal() {
				continue
			}
			if _, err := g.AddEdge(string(nt), sym.Name, callLabel); err != nil {
				return nil, fmt.Errorf("rsm: call graph edge %s → %s: %w", nt, sym.Name, err)
			}
		}
	}

	return g, nil
}

// Recursive returns the nonterminals that can reach a call of themselves,
// sorted. An RSM without recursive nonterminals accepts a regular language.
func (r *RSM) Recursive() ([]grammar.Nonterminal, error) {
	cg, err := r.CallGraph()
	if err != nil {
		return nil, err
	}
	comps, err := dfs.Components(cg)
	if err != nil {
		return nil, fmt.Errorf("rsm: call graph: %w", err)
	}

	var out []grammar.Nonterminal
	for _, comp := range comps {
		if len(comp) == 1 && !cg.HasEdge(comp[0], comp[0]) {
			continue
		}
		for _, id := range comp {
			out = append(out, grammar.Nonterminal(id))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// CallOrder returns the nonterminals callees first, so that every box comes
// after the boxes it calls. Returns dfs.ErrCycleDetected (wrapped) if some
// nonterminal is recursive.
func (r *RSM) CallOrder() ([]grammar.Nonterminal, error) {
	cg, err := r.CallGraph()
	if err != nil {
		return nil, err
	}
	order, err := dfs.TopologicalSort(cg)
	if err != nil {
		return nil, fmt.Errorf("rsm: call order: %w", err)
	}
	out := make([]grammar.Nonterminal, len(order))
	for i, id := range order {
		out[len(order)-1-i] = grammar.Nonterminal(id)
	}

	return out, nil
}
