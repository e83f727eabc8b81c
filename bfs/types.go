package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/cfpq/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrSourceNotFound is returned when a source ID is absent.
	ErrSourceNotFound = errors.New("bfs: source vertex not found")

	// ErrNoSources is returned when no source vertex is given.
	ErrNoSources = errors.New("bfs: no source vertices")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrUnreached is returned by PathTo and Word for a vertex the walk never reached.
	ErrUnreached = errors.New("bfs: vertex not reached")
)

// Option configures a walk.
// An invalid Option is recorded and surfaced as ErrOptionViolation by Walk.
type Option func(*Options)

// Options holds the parameters of a walk.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when a vertex is dequeued. A non-nil error aborts the walk.
	OnVisit func(id string, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth. 0 means no limit.
	MaxDepth int

	// Labels, if non-empty, is the set of edge labels the walk may follow.
	Labels map[string]struct{}

	err error
}

// DefaultOptions returns a background context, no depth limit, every label
// allowed and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(string, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on every visited vertex.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at depth d.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithLabels restricts the walk to edges labeled with one of labels.
// Calling it with no labels is an ErrOptionViolation; omit the option to
// follow every edge.
func WithLabels(labels ...string) Option {
	return func(o *Options) {
		if len(labels) == 0 {
			o.err = fmt.Errorf("%w: empty label filter", ErrOptionViolation)
			return
		}
		if o.Labels == nil {
			o.Labels = make(map[string]struct{}, len(labels))
		}
		for _, l := range labels {
			o.Labels[l] = struct{}{}
		}
	}
}

// Result holds the outcome of a walk.
type Result struct {
	// Order lists visited vertices in visit sequence.
	Order []string
	// Depth maps each visited vertex to its distance from the nearest source.
	Depth map[string]int
	// Parent maps each non-source visited vertex to its discovery edge.
	Parent map[string]*core.Edge
}

// Reached reports whether id was visited.
func (r *Result) Reached(id string) bool {
	_, ok := r.Depth[id]
	return ok
}

// PathTo returns the edges of a shortest path from some source to dest.
// A source yields an empty path. Returns ErrUnreached otherwise.
func (r *Result) PathTo(dest string) ([]*core.Edge, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %q", ErrUnreached, dest)
	}
	var path []*core.Edge
	for cur := dest; ; {
		e, ok := r.Parent[cur]
		if !ok {
			break
		}
		path = append(path, e)
		cur = e.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// Word returns the labels along PathTo(dest).
func (r *Result) Word(dest string) ([]string, error) {
	path, err := r.PathTo(dest)
	if err != nil {
		return nil, err
	}
	word := make([]string, len(path))
	for i, e := range path {
		word[i] = e.Label
	}

	return word, nil
}
