// Package telemetry exposes a routetable.RouteTable's StatsSnapshot as
// Prometheus metrics.
//
// Metrics are collected lazily: Collector implements
// prometheus.Collector and reads the table's counters only when the
// Prometheus registry scrapes it, rather than incrementing counters
// inline on every Route() call. Route() is the hot path
// this whole system exists to keep allocation-free and lock-free;
// a CounterVec.WithLabelValues lookup can allocate and briefly lock
// internally, which would undo that guarantee. Pulling the snapshot
// on scrape keeps Route() untouched.
package telemetry
