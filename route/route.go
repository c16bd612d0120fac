// Package route defines a single named (filter, destinations, priority)
// routing rule with atomic hit/miss counters.
package route

import (
	"sync/atomic"

	"github.com/tak-mesh/cot-router/cotview"
	"github.com/tak-mesh/cot-router/predicate"
)

// Route is a named rule: a predicate over a Message View, an ordered
// set of opaque destination identifiers to deliver to on a match, and a
// priority used to order evaluation within a Route Table.
//
// A Route is immutable after construction except for its hit/miss
// counters, which are updated with relaxed-ordering atomics on every
// Evaluate call — counters are for observation, never for correctness,
// so concurrent evaluators never coordinate around them.
type Route struct {
	id          string
	description string
	priority    int32

	tree *predicate.Tree
	root predicate.Handle

	destinations []string

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New constructs a Route. destinations is copied so the caller's slice
// can be reused or mutated afterward without affecting the Route.
func New(id, description string, priority int32, tree *predicate.Tree, root predicate.Handle, destinations []string) (*Route, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}
	if tree == nil || root < 0 || root > tree.Root() {
		return nil, ErrInvalidRoot
	}

	dests := append([]string(nil), destinations...)
	return &Route{
		id:           id,
		description:  description,
		priority:     priority,
		tree:         tree,
		root:         root,
		destinations: dests,
	}, nil
}

func (r *Route) ID() string             { return r.id }
func (r *Route) Description() string    { return r.description }
func (r *Route) Priority() int32        { return r.priority }
func (r *Route) Destinations() []string { return r.destinations }

// Evaluate checks view against the route's predicate and updates hit or
// miss counters accordingly. Exactly one of the two counters is
// incremented per call.
func (r *Route) Evaluate(view cotview.View) predicate.Result {
	result := r.tree.Evaluate(r.root, view)
	if result == predicate.Pass {
		r.hits.Add(1)
	} else {
		r.misses.Add(1)
	}
	return result
}

// Stats is a point-in-time snapshot of a Route's counters.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Snapshot reads the route's current counters. Individual counters are
// read atomically, but the pair is not a consistent point-in-time
// snapshot under concurrent Evaluate calls (spec §4.E: "Snapshots are
// consistent per-counter but not across counters").
func (r *Route) Snapshot() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
	}
}
