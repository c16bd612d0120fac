package telemetry

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/prometheus/client_golang/prometheus"
)

// evalRateDesc exposes the EWMA-smoothed evaluations-per-second
// derived metric mentioned in the spec as optional.
var evalRateDesc = prometheus.NewDesc(
	"cot_router_eval_rate",
	"EWMA-smoothed routing calls per second, sampled at most once per second.",
	nil, nil,
)

// rateTracker derives an EWMA of routing calls per second from
// successive StatsSnapshot reads. Sampling itself is throttled with
// rate.Sometimes so a Prometheus scraper hitting Collect frequently
// doesn't recompute the EWMA on every single scrape; this confines
// rate.Sometimes's internal mutex to the non-hot-path Collect call,
// never the Route() hot path.
type rateTracker struct {
	mu       sync.Mutex
	sometime rate.Sometimes
	lastN    uint64
	lastAt   time.Time
	ewma     float64
}

func newRateTracker() *rateTracker {
	return &rateTracker{
		sometime: rate.Sometimes{Interval: time.Second},
	}
}

// observe feeds a new total-call count into the EWMA, at most once per
// configured interval, and returns the current smoothed rate.
func (rt *rateTracker) observe(totalCalls uint64) float64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.sometime.Do(func() {
		now := time.Now()
		if !rt.lastAt.IsZero() {
			elapsed := now.Sub(rt.lastAt).Seconds()
			if elapsed > 0 {
				instantaneous := float64(totalCalls-rt.lastN) / elapsed
				const alpha = 0.3
				rt.ewma = alpha*instantaneous + (1-alpha)*rt.ewma
			}
		}
		rt.lastN = totalCalls
		rt.lastAt = now
	})

	return rt.ewma
}
