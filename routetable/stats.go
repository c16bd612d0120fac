package routetable

// RouteStats mirrors a single route's hit/miss counters, keyed by id
// in StatsSnapshot.
type RouteStats struct {
	Hits   uint64
	Misses uint64
}

// StatsSnapshot is a point-in-time read of a table's counters. Like
// route.Stats, it is consistent per-counter but not across counters:
// concurrent Route calls may land between when PerRoute and
// TotalRouted are each read.
type StatsSnapshot struct {
	TotalRouted  uint64
	TotalDropped uint64
	PerRoute     map[string]RouteStats
}

// Stats returns a snapshot of the table's counters, including every
// currently-present route's hit/miss counts.
func (t *RouteTable) Stats() StatsSnapshot {
	entries := *t.entries.Load()

	perRoute := make(map[string]RouteStats, len(entries))
	for _, e := range entries {
		s := e.r.Snapshot()
		perRoute[e.r.ID()] = RouteStats{Hits: s.Hits, Misses: s.Misses}
	}

	return StatsSnapshot{
		TotalRouted:  t.totalRouted.Load(),
		TotalDropped: t.totalDropped.Load(),
		PerRoute:     perRoute,
	}
}
