package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tak-mesh/cot-router/routetable"
)

var (
	totalRoutedDesc = prometheus.NewDesc(
		"cot_router_total_routed",
		"Total routing calls that produced at least one destination.",
		nil, nil,
	)
	totalDroppedDesc = prometheus.NewDesc(
		"cot_router_total_dropped",
		"Total routing calls that produced no destination.",
		nil, nil,
	)
	routeHitsDesc = prometheus.NewDesc(
		"cot_router_route_hits_total",
		"Times a route's predicate matched.",
		[]string{"route_id"}, nil,
	)
	routeMissesDesc = prometheus.NewDesc(
		"cot_router_route_misses_total",
		"Times a route's predicate was evaluated and did not match.",
		[]string{"route_id"}, nil,
	)
)

// Collector adapts one routetable.RouteTable (or, for hot-reloadable
// deployments, a routetable.Manager) into a prometheus.Collector.
type Collector struct {
	source statsSource
	rate   *rateTracker
}

// statsSource is satisfied by *routetable.RouteTable and by
// managerSource (the adapter over *routetable.Manager below), so a
// Collector can wrap either a static table or a hot-reloadable one
// without the caller re-wrapping on reload.
type statsSource interface {
	Stats() routetable.StatsSnapshot
}

// managerSource adapts a *routetable.Manager (whose Stats() method
// reports reload/rollback counters, not routing counters) to
// statsSource by always reading through to its current table.
type managerSource struct {
	mgr *routetable.Manager
}

func (m managerSource) Stats() routetable.StatsSnapshot {
	return m.mgr.GetTable().Stats()
}

// NewCollector wraps a static RouteTable.
func NewCollector(table *routetable.RouteTable) *Collector {
	return &Collector{source: table, rate: newRateTracker()}
}

// NewManagedCollector wraps a Manager, always scraping whichever table
// is current at collection time.
func NewManagedCollector(mgr *routetable.Manager) *Collector {
	return &Collector{source: managerSource{mgr: mgr}, rate: newRateTracker()}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- totalRoutedDesc
	ch <- totalDroppedDesc
	ch <- routeHitsDesc
	ch <- routeMissesDesc
	ch <- evalRateDesc
}

// Collect implements prometheus.Collector. It reads the current
// StatsSnapshot and emits it as Prometheus samples; it never touches
// the routing hot path.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(totalRoutedDesc, prometheus.CounterValue, float64(snap.TotalRouted))
	ch <- prometheus.MustNewConstMetric(totalDroppedDesc, prometheus.CounterValue, float64(snap.TotalDropped))

	for id, rs := range snap.PerRoute {
		ch <- prometheus.MustNewConstMetric(routeHitsDesc, prometheus.CounterValue, float64(rs.Hits), id)
		ch <- prometheus.MustNewConstMetric(routeMissesDesc, prometheus.CounterValue, float64(rs.Misses), id)
	}

	evalRate := c.rate.observe(snap.TotalRouted + snap.TotalDropped)
	ch <- prometheus.MustNewConstMetric(evalRateDesc, prometheus.GaugeValue, evalRate)
}
