// SPDX-License-Identifier: MIT

package closure

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/cfpq/grammar"
)

// Sentinel errors for closure computation.
var (
	// ErrNilGrammar is returned if a nil grammar pointer is passed.
	ErrNilGrammar = errors.New("closure: grammar is nil")

	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("closure: graph is nil")

	// ErrMalformedGrammar is returned when a production is not in weak CNF.
	ErrMalformedGrammar = errors.New("closure: malformed grammar")

	// ErrNoConvergence is returned when the pass limit is hit before a pass
	// without changes.
	ErrNoConvergence = errors.New("closure: no convergence within pass limit")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("closure: invalid option supplied")

	// ErrUnknownSource is returned when a WithSources vertex is not in the graph.
	ErrUnknownSource = errors.New("closure: source vertex not in graph")
)

// DefaultWorkers computes products sequentially, updating matrices in place.
const DefaultWorkers = 1

// PassStats describes one completed closure pass.
type PassStats struct {
	// Pass is 1-based.
	Pass int
	// Changed is the number of head nonterminals whose matrix grew.
	Changed int
	// Nnz is the number of set cells per nonterminal after the pass.
	Nnz map[grammar.Nonterminal]int
}

// Option configures Compute via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of one closure computation.
type Options struct {
	// MaxPasses bounds the number of passes; 0 derives |N|·n²+1.
	MaxPasses int

	// Workers is the number of concurrent products per pass.
	Workers int

	// Logger receives debug records per pass and per query.
	Logger *slog.Logger

	// OnPass, if set, is called after every pass.
	OnPass func(PassStats)

	// Sources, if non-empty, restricts the result to triples starting at
	// one of these vertices.
	Sources []string

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - derived pass limit (MaxPasses == 0)
//   - sequential products (Workers == 1)
//   - slog.Default() logger
//   - no pass observer.
func DefaultOptions() Options {
	return Options{
		MaxPasses: 0,
		Workers:   DefaultWorkers,
		Logger:    slog.Default(),
	}
}

// WithMaxPasses bounds the number of closure passes.
//
//	n > 0: at most n passes, the last one must change nothing
//	n == 0: derive the bound from the grammar and graph
//	n < 0: invalid option → ErrOptionViolation
func WithMaxPasses(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPasses cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPasses = n
	}
}

// WithWorkers sets how many products of one pass run concurrently.
// n < 1 is an invalid option.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPassObserver registers fn to run after every pass.
func WithPassObserver(fn func(PassStats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPass = fn
		}
	}
}

// WithSources restricts the query to paths starting at one of ids.
// Only the part of the graph reachable from ids is indexed, so matrices
// shrink with the reachable set. Calling it with no ids or an empty id is an
// invalid option.
func WithSources(ids ...string) Option {
	return func(o *Options) {
		if len(ids) == 0 {
			o.err = fmt.Errorf("%w: empty source set", ErrOptionViolation)
			return
		}
		for _, id := range ids {
			if id == "" {
				o.err = fmt.Errorf("%w: empty source vertex ID", ErrOptionViolation)
				return
			}
		}
		o.Sources = append(o.Sources, ids...)
	}
}
