package routetable

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tak-mesh/cot-router/cotview"
	"github.com/tak-mesh/cot-router/predicate"
	"github.com/tak-mesh/cot-router/route"
)

// RouteResult is the outcome of a single routing call.
type RouteResult struct {
	// Destinations is the ordered, deduplicated, first-occurrence set
	// of destination identifiers the message should be delivered to.
	Destinations []string

	// MatchedRouteIDs is the ordered set of route ids that matched,
	// in (priority desc, insertion order asc) order.
	MatchedRouteIDs []string

	// UsedDefault is true iff no route matched and the table's
	// default destination was substituted (Multicast only).
	UsedDefault bool
}

// entry pairs a route with its insertion sequence number, used as the
// tie-break for equal-priority routes.
type entry struct {
	r    *route.Route
	seq  uint64
	prio int32
}

// RouteTable is an ordered collection of routes evaluated against a
// Message View under a configured Strategy.
type RouteTable struct {
	strategy           Strategy
	defaultDestination string
	hasDefault         bool

	mu      sync.Mutex // serializes Add/Remove
	entries atomic.Pointer[[]entry]
	nextSeq atomic.Uint64

	totalRouted  atomic.Uint64
	totalDropped atomic.Uint64
}

// New constructs an empty RouteTable for the given strategy. An empty
// defaultDestination means no fallback destination is configured.
func New(strategy Strategy, defaultDestination string) (*RouteTable, error) {
	switch strategy {
	case Multicast, Unicast:
	case RoundRobin:
		return nil, ErrRoundRobinUnsupported
	default:
		return nil, ErrUnknownStrategy
	}
	t := &RouteTable{
		strategy:           strategy,
		defaultDestination: defaultDestination,
		hasDefault:         defaultDestination != "",
	}
	empty := make([]entry, 0)
	t.entries.Store(&empty)
	return t, nil
}

func sortedCopy(es []entry) []entry {
	out := append([]entry(nil), es...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].prio != out[j].prio {
			return out[i].prio > out[j].prio
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Add inserts r into the table. It fails with ErrDuplicateRoute if a
// route with the same id is already present.
func (t *RouteTable) Add(r *route.Route) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := *t.entries.Load()
	for _, e := range cur {
		if e.r.ID() == r.ID() {
			return ErrDuplicateRoute
		}
	}

	next := make([]entry, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, entry{r: r, seq: t.nextSeq.Add(1), prio: r.Priority()})
	next = sortedCopy(next)
	t.entries.Store(&next)
	return nil
}

// Remove deletes the route with the given id. It fails with
// ErrUnknownRoute if no such route exists. That route's counters are
// lost.
func (t *RouteTable) Remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := *t.entries.Load()
	idx := -1
	for i, e := range cur {
		if e.r.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownRoute
	}

	next := make([]entry, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	t.entries.Store(&next)
	return nil
}

// Strategy reports the table's configured strategy.
func (t *RouteTable) Strategy() Strategy { return t.strategy }

// Route evaluates view against every route in priority order and
// produces a RouteResult per the table's strategy. It never blocks,
// never allocates beyond the result slices it must return, and never
// takes a lock.
func (t *RouteTable) Route(view cotview.View) RouteResult {
	entries := *t.entries.Load()

	switch t.strategy {
	case Unicast:
		return t.routeUnicast(entries, view)
	default:
		return t.routeMulticast(entries, view)
	}
}

func (t *RouteTable) routeMulticast(entries []entry, view cotview.View) RouteResult {
	var matched []string
	var dests []string
	seen := make(map[string]struct{})

	for _, e := range entries {
		if e.r.Evaluate(view) != predicate.Pass {
			continue
		}
		matched = append(matched, e.r.ID())
		for _, d := range e.r.Destinations() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dests = append(dests, d)
		}
	}

	result := RouteResult{MatchedRouteIDs: matched}
	if len(matched) == 0 && t.hasDefault {
		result.Destinations = []string{t.defaultDestination}
		result.UsedDefault = true
	} else {
		result.Destinations = dests
	}

	t.recordOutcome(len(result.Destinations) > 0)
	return result
}

func (t *RouteTable) routeUnicast(entries []entry, view cotview.View) RouteResult {
	for _, e := range entries {
		if e.r.Evaluate(view) != predicate.Pass {
			continue
		}
		t.recordOutcome(true)
		return RouteResult{
			Destinations:    append([]string(nil), e.r.Destinations()...),
			MatchedRouteIDs: []string{e.r.ID()},
		}
	}

	t.recordOutcome(false)
	return RouteResult{}
}

func (t *RouteTable) recordOutcome(delivered bool) {
	if delivered {
		t.totalRouted.Add(1)
	} else {
		t.totalDropped.Add(1)
	}
}
